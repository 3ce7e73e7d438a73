package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func ratePtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestHSNService_Create_Success(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	svc := service.NewHSNService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.HSN")).Return(nil)

	hsn, err := svc.Create(context.Background(), service.CreateHSNInput{
		Code:           " 7214 ",
		Description:    "Bars and rods of iron",
		GSTRatePercent: ratePtr("18"),
	})

	require.NoError(t, err)
	assert.Equal(t, "7214", hsn.Code)
	assert.True(t, hsn.GSTRatePercent.Equal(decimal.NewFromInt(18)))
	repo.AssertExpectations(t)
}

func TestHSNService_Create_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input service.CreateHSNInput
		field string
	}{
		{"missing code", service.CreateHSNInput{GSTRatePercent: ratePtr("5")}, "hsn_code"},
		{"non-numeric code", service.CreateHSNInput{Code: "72AB", GSTRatePercent: ratePtr("18")}, "hsn_code"},
		{"missing rate", service.CreateHSNInput{Code: "1001"}, "gst_rate_percent"},
		{"negative rate", service.CreateHSNInput{Code: "1001", GSTRatePercent: ratePtr("-1")}, "gst_rate_percent"},
		{"rate above 100", service.CreateHSNInput{Code: "1001", GSTRatePercent: ratePtr("100.01")}, "gst_rate_percent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockHSNRepo)
			svc := service.NewHSNService(repo)

			hsn, err := svc.Create(context.Background(), tt.input)

			assert.Nil(t, hsn)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestHSNService_Create_BoundaryRates(t *testing.T) {
	for _, rate := range []string{"0", "100"} {
		repo := new(mocks.MockHSNRepo)
		svc := service.NewHSNService(repo)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.HSN")).Return(nil)

		_, err := svc.Create(context.Background(), service.CreateHSNInput{Code: "9999", GSTRatePercent: ratePtr(rate)})

		assert.NoError(t, err, rate)
	}
}

func TestHSNService_Create_Duplicate(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	svc := service.NewHSNService(repo)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.HSN")).Return(domain.ErrDuplicateHSN)

	_, err := svc.Create(context.Background(), service.CreateHSNInput{Code: "7214", GSTRatePercent: ratePtr("18")})

	assert.ErrorIs(t, err, domain.ErrDuplicateHSN)
}

func TestHSNService_GetByCode_TrimsInput(t *testing.T) {
	repo := new(mocks.MockHSNRepo)
	svc := service.NewHSNService(repo)
	expected := &domain.HSN{Code: "7214"}
	repo.On("GetByCode", mock.Anything, "7214").Return(expected, nil)

	hsn, err := svc.GetByCode(context.Background(), " 7214")

	require.NoError(t, err)
	assert.Same(t, expected, hsn)
}

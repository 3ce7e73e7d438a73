package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstbill/internal/config"
	"gstbill/internal/domain"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func homeCompany() config.CompanyConfig {
	return config.CompanyConfig{Name: "Shree Traders", State: "Gujarat", StateCode: "24"}
}

func newCustomerService() (service.CustomerService, *mocks.MockCustomerRepo) {
	repo := new(mocks.MockCustomerRepo)
	return service.NewCustomerService(repo, homeCompany()), repo
}

func TestCustomerService_Create_DefaultsToHomeState(t *testing.T) {
	svc, repo := newCustomerService()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	c, err := svc.Create(context.Background(), service.CustomerInput{Name: "  Patel Stores "})

	require.NoError(t, err)
	assert.Equal(t, "Patel Stores", c.Name)
	assert.Equal(t, "Gujarat", c.State)
	assert.Equal(t, "24", c.StateCode)
	repo.AssertExpectations(t)
}

func TestCustomerService_Create_StateCodeFromGSTIN(t *testing.T) {
	svc, repo := newCustomerService()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Customer")).Return(nil)

	c, err := svc.Create(context.Background(), service.CustomerInput{
		Name:  "Mumbai Metals",
		GSTIN: "27abcde1234f1z5",
		State: "Maharashtra",
	})

	require.NoError(t, err)
	assert.Equal(t, "27ABCDE1234F1Z5", c.GSTIN)
	assert.Equal(t, "27", c.StateCode)
	assert.Equal(t, "Maharashtra", c.State)
}

func TestCustomerService_Create_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input service.CustomerInput
		field string
	}{
		{"missing name", service.CustomerInput{Name: "   "}, "name"},
		{"bad state code", service.CustomerInput{Name: "X", StateCode: "GJ"}, "state_code"},
		{"unknown state code", service.CustomerInput{Name: "X", StateCode: "99"}, "state_code"},
		{"short gstin", service.CustomerInput{Name: "X", GSTIN: "24ABC"}, "gstin"},
		{"malformed gstin", service.CustomerInput{Name: "X", GSTIN: "24ABCDE123456Z5"}, "gstin"},
		{"gstin state mismatch", service.CustomerInput{Name: "X", GSTIN: "27ABCDE1234F1Z5", StateCode: "24"}, "gstin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newCustomerService()

			c, err := svc.Create(context.Background(), tt.input)

			assert.Nil(t, c)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCustomerService_Update_AppliesOnlyProvidedFields(t *testing.T) {
	svc, repo := newCustomerService()
	id := uuid.New()
	existing := &domain.Customer{ID: id, Name: "Old Name", State: "Gujarat", StateCode: "24", Mobile: "98250"}
	repo.On("GetByID", mock.Anything, id).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	name := "New Name"
	email := "billing@example.com"
	c, err := svc.Update(context.Background(), id, service.UpdateCustomerInput{Name: &name, Email: &email})

	require.NoError(t, err)
	assert.Equal(t, "New Name", c.Name)
	assert.Equal(t, "billing@example.com", c.Email)
	assert.Equal(t, "98250", c.Mobile)
	assert.Equal(t, "24", c.StateCode)
	repo.AssertExpectations(t)
}

func TestCustomerService_Update_NotFound(t *testing.T) {
	svc, repo := newCustomerService()
	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrCustomerNotFound)

	c, err := svc.Update(context.Background(), id, service.UpdateCustomerInput{})

	assert.Nil(t, c)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestCustomerService_Delete_HasInvoices(t *testing.T) {
	svc, repo := newCustomerService()
	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(domain.ErrCustomerHasInvoices)

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrCustomerHasInvoices)
}

func TestCustomerService_BulkImport_Success(t *testing.T) {
	svc, repo := newCustomerService()
	repo.On("BulkCreate", mock.Anything, mock.MatchedBy(func(cs []domain.Customer) bool {
		return len(cs) == 2 && cs[0].StateCode == "24" && cs[1].StateCode == "27"
	}), true).Return(2, nil)

	res, err := svc.BulkImport(context.Background(), []service.CustomerInput{
		{Name: "Local"},
		{Name: "Outside", StateCode: "27", State: "Maharashtra"},
	}, true)

	require.NoError(t, err)
	assert.Equal(t, &service.ImportResult{Inserted: 2, Total: 2, Cleared: true}, res)
	repo.AssertExpectations(t)
}

func TestCustomerService_BulkImport_RowValidation(t *testing.T) {
	svc, repo := newCustomerService()

	res, err := svc.BulkImport(context.Background(), []service.CustomerInput{
		{Name: "Fine"},
		{Name: ""},
	}, false)

	assert.Nil(t, res)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "customers[1].name", verr.Field)
	repo.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerService_BulkImport_Empty(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.BulkImport(context.Background(), nil, false)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCustomerService_ImportFile_CSV(t *testing.T) {
	svc, repo := newCustomerService()
	csv := "name,gstin,state,state_code,address,mobile,email\n" +
		"Patel Stores,,,,Ahmedabad,9825000000,\n" +
		"Mumbai Metals,27abcde1234f1z5,Maharashtra,,Mumbai,,\n"
	repo.On("BulkCreate", mock.Anything, mock.MatchedBy(func(cs []domain.Customer) bool {
		return len(cs) == 2 &&
			cs[0].Name == "Patel Stores" && cs[0].StateCode == "24" &&
			cs[1].GSTIN == "27ABCDE1234F1Z5" && cs[1].StateCode == "27"
	}), false).Return(2, nil)

	res, err := svc.ImportFile(context.Background(), "customers.csv", strings.NewReader(csv), false)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	repo.AssertExpectations(t)
}

func TestCustomerService_ImportFile_Unsupported(t *testing.T) {
	svc, _ := newCustomerService()

	_, err := svc.ImportFile(context.Background(), "customers.pdf", strings.NewReader("x"), false)

	assert.ErrorIs(t, err, domain.ErrUnsupportedImport)
}

func TestCustomerService_ClearAll(t *testing.T) {
	svc, repo := newCustomerService()
	repo.On("ClearAll", mock.Anything).Return(nil)

	require.NoError(t, svc.ClearAll(context.Background()))
	repo.AssertExpectations(t)
}

func TestCustomerService_ClearAll_RepoError(t *testing.T) {
	svc, repo := newCustomerService()
	repo.On("ClearAll", mock.Anything).Return(errors.New("db down"))

	assert.EqualError(t, svc.ClearAll(context.Background()), "db down")
}

package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onesWords = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teenWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountInWords spells an amount the way Indian invoices print it, grouping
// by crore, lakh and thousand: 118050.50 becomes
// "Rupees One Lakh Eighteen Thousand Fifty and Fifty Paise Only".
func AmountInWords(amount decimal.Decimal) string {
	prefix := "Rupees "
	if amount.IsNegative() {
		prefix = "Minus Rupees "
		amount = amount.Neg()
	}
	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Shift(2).Round(0).IntPart()
	r := rupees.IntPart()
	if paise == 100 {
		r++
		paise = 0
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(indianWords(r))
	if paise > 0 {
		b.WriteString(" and ")
		b.WriteString(belowThousand(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

func indianWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	var parts []string
	if crore := n / 10000000; crore > 0 {
		// Amounts above 99 crore keep grouping in crores.
		parts = append(parts, indianWords(crore)+" Crore")
	}
	if lakh := (n % 10000000) / 100000; lakh > 0 {
		parts = append(parts, belowThousand(lakh)+" Lakh")
	}
	if thousand := (n % 100000) / 1000; thousand > 0 {
		parts = append(parts, belowThousand(thousand)+" Thousand")
	}
	if rest := n % 1000; rest > 0 {
		parts = append(parts, belowThousand(rest))
	}
	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return onesWords[n]
	case n < 20:
		return teenWords[n-10]
	case n < 100:
		if n%10 == 0 {
			return tensWords[n/10]
		}
		return tensWords[n/10] + " " + onesWords[n%10]
	default:
		if n%100 == 0 {
			return onesWords[n/100] + " Hundred"
		}
		return onesWords[n/100] + " Hundred " + belowThousand(n%100)
	}
}

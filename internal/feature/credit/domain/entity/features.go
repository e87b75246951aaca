// Package entity defines the domain models for the credit feature.
package entity

// Score bounds.
const (
	MinScore = 300
	MaxScore = 850
)

// Features are the self-reported inputs of the simple credit score.
type Features struct {
	PaymentHistory       float64 // on-time payments, 0-100 (%)
	CreditUtilization    float64 // used / available credit, 0-100 (%)
	CreditAgeYears       float64 // average account age, >= 0; capped at 30
	CreditTypesCount     float64 // distinct credit types, 1-10
	RecentInquiriesCount float64 // hard inquiries, 0-10
}

package models

// PropertyType classifies a property
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "residential"
	PropertyTypeCommercial  PropertyType = "commercial"
	PropertyTypeMixed       PropertyType = "mixed"
)

// Valid reports whether t is a known property type
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeResidential, PropertyTypeCommercial, PropertyTypeMixed:
		return true
	}
	return false
}

// TenantStatus is the lifecycle state of a tenancy
type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusPending  TenantStatus = "pending"
)

// Valid reports whether s is a known tenant status
func (s TenantStatus) Valid() bool {
	switch s {
	case TenantStatusActive, TenantStatusInactive, TenantStatusPending:
		return true
	}
	return false
}

// MeterType is the utility a meter measures
type MeterType string

const (
	MeterTypeWater       MeterType = "water"
	MeterTypeElectricity MeterType = "electricity"
	MeterTypeGas         MeterType = "gas"
)

// Valid reports whether t is a known meter type
func (t MeterType) Valid() bool {
	switch t {
	case MeterTypeWater, MeterTypeElectricity, MeterTypeGas:
		return true
	}
	return false
}

// MeterStatus is the assignment state of a meter
type MeterStatus string

const (
	MeterStatusActive      MeterStatus = "active"
	MeterStatusAvailable   MeterStatus = "available"
	MeterStatusMaintenance MeterStatus = "maintenance"
	MeterStatusInactive    MeterStatus = "inactive"
)

// Valid reports whether s is a known meter status
func (s MeterStatus) Valid() bool {
	switch s {
	case MeterStatusActive, MeterStatusAvailable, MeterStatusMaintenance, MeterStatusInactive:
		return true
	}
	return false
}

// BillingStatus is the payment state of a bill
type BillingStatus string

const (
	BillingStatusPending   BillingStatus = "pending"
	BillingStatusPaid      BillingStatus = "paid"
	BillingStatusOverdue   BillingStatus = "overdue"
	BillingStatusCancelled BillingStatus = "cancelled"
)

// Valid reports whether s is a known billing status
func (s BillingStatus) Valid() bool {
	switch s {
	case BillingStatusPending, BillingStatusPaid, BillingStatusOverdue, BillingStatusCancelled:
		return true
	}
	return false
}

// Payable reports whether a bill in this status can still receive a payment
func (s BillingStatus) Payable() bool {
	return s == BillingStatusPending || s == BillingStatusOverdue
}

// PaymentMethod is how a payment was made
type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "mpesa"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
)

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodMpesa, PaymentMethodBankTransfer, PaymentMethodCash:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// MpesaTransactionStatus is the state of an STK push as seen by this service
type MpesaTransactionStatus string

const (
	MpesaStatusInitiated MpesaTransactionStatus = "initiated"
	MpesaStatusPending   MpesaTransactionStatus = "pending"
	MpesaStatusCompleted MpesaTransactionStatus = "completed"
	MpesaStatusFailed    MpesaTransactionStatus = "failed"
	MpesaStatusCancelled MpesaTransactionStatus = "cancelled"
)

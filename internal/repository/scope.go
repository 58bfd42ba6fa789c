package repository

import (
	"gorm.io/gorm"

	"smarta-landlord-svc/internal/models"
	"smarta-landlord-svc/internal/session"
)

// The helpers below build sub-selects of the ids a landlord may see. Ownership is
// rooted at properties.landlord_id and followed down the foreign keys.

func ownedPropertyIDs(db *gorm.DB, s session.Session) *gorm.DB {
	return db.Model(&models.Property{}).Select("id").Where("landlord_id = ?", s.LandlordID)
}

func ownedTenantIDs(db *gorm.DB, s session.Session) *gorm.DB {
	return db.Model(&models.Tenant{}).Select("id").Where("property_id IN (?)", ownedPropertyIDs(db, s))
}

func ownedMeterIDs(db *gorm.DB, s session.Session) *gorm.DB {
	return db.Model(&models.Meter{}).Select("id").Where("property_id IN (?)", ownedPropertyIDs(db, s))
}

func ownedBillingIDs(db *gorm.DB, s session.Session) *gorm.DB {
	return db.Model(&models.Billing{}).Select("id").Where("tenant_id IN (?)", ownedTenantIDs(db, s))
}

// notFoundIfNone converts an update/delete that touched no row into gorm.ErrRecordNotFound
func notFoundIfNone(result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

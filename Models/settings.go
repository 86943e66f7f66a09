package Models

import (
	"log"

	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// CompanySetting is a key/value store for operator tunables.
type CompanySetting struct {
	gorm.Model
	Key   string `json:"key" gorm:"size:100;uniqueIndex;not null"`
	Value string `json:"value" gorm:"size:500"`
}

// Setting keys.
const (
	SettingDefaultHourlyRate = "default_hourly_rate"
	SettingVatRate           = "vat_rate"
	SettingCompanyName       = "company_name"
	SettingCompanyAddress    = "company_address"
	SettingCompanyEmail      = "company_email"
	SettingCompanyPhone      = "company_phone"
	SettingCompanyVatID      = "company_vat_id"
)

var defaultSettings = map[string]string{
	SettingDefaultHourlyRate: "95",
	SettingVatRate:           "20",
	SettingCompanyName:       "Handwerk GmbH",
	SettingCompanyAddress:    "",
	SettingCompanyEmail:      "",
	SettingCompanyPhone:      "",
	SettingCompanyVatID:      "",
}

// SeedDefaultSettings inserts any missing tunables with their defaults.
func SeedDefaultSettings(db *gorm.DB) {
	for key, value := range defaultSettings {
		var setting CompanySetting
		err := db.Where(CompanySetting{Key: key}).
			Attrs(CompanySetting{Value: value}).
			FirstOrCreate(&setting).Error
		if err != nil {
			log.Printf("Error seeding setting %s: %v", key, err)
		}
	}
}

// GetSetting returns the stored value or the fallback when unset.
func GetSetting(db *gorm.DB, key, fallback string) string {
	var setting CompanySetting
	if err := db.Where("key = ?", key).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

// GetSettingFloat coerces a stored value to float64, falling back on
// missing keys and garbage values alike.
func GetSettingFloat(db *gorm.DB, key string, fallback float64) float64 {
	raw := GetSetting(db, key, "")
	if raw == "" {
		return fallback
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		log.Printf("Setting %s has non-numeric value %q, using %v", key, raw, fallback)
		return fallback
	}
	return value
}

// SetSetting writes or overwrites one tunable.
func SetSetting(db *gorm.DB, key, value string) error {
	var setting CompanySetting
	err := db.Where(CompanySetting{Key: key}).FirstOrCreate(&setting).Error
	if err != nil {
		return err
	}
	return db.Model(&setting).Update("value", value).Error
}

// DefaultHourlyRate is the process-wide standard rate labor operations fall
// back to when they carry no rate of their own.
func DefaultHourlyRate(db *gorm.DB) float64 {
	return GetSettingFloat(db, SettingDefaultHourlyRate, 95)
}

// DefaultVatRate is the VAT percentage new invoices start with.
func DefaultVatRate(db *gorm.DB) float64 {
	return GetSettingFloat(db, SettingVatRate, 20)
}

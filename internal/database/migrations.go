package database

import "fmt"

func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&ListingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate listings table: %w", err)
	}

	// Lookups by region and by id are the common access paths.
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_zipcode_date
		ON listings(zipcode, date);
	`).Error; err != nil {
		return fmt.Errorf("failed to create zipcode index: %w", err)
	}

	return nil
}

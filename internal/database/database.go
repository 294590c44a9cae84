package database

import (
	"context"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"houserocket/server/internal/models"
)

const insertBatchSize = 500

// ListingRecord is one row of the listings table. Seq preserves the order
// the rows were imported in, which deduplication relies on.
type ListingRecord struct {
	Seq          uint    `gorm:"primaryKey;autoIncrement"`
	ListingID    int64   `gorm:"column:id;not null;index"`
	Date         string  `gorm:"type:text;not null"`
	Price        float64 `gorm:"not null"`
	Bedrooms     int
	Bathrooms    float64
	SqftLiving   int
	SqftBasement int
	Floors       float64
	Waterfront   int
	Condition    int
	Grade        int
	YearBuilt    int `gorm:"column:yr_built"`
	Zipcode      int `gorm:"not null;index"`
	Lat          float64
	Long         float64
}

func (ListingRecord) TableName() string {
	return "listings"
}

func recordFromListing(l models.Listing) ListingRecord {
	return ListingRecord{
		ListingID:    l.ID,
		Date:         l.Date,
		Price:        l.Price,
		Bedrooms:     l.Bedrooms,
		Bathrooms:    l.Bathrooms,
		SqftLiving:   l.SqftLiving,
		SqftBasement: l.SqftBasement,
		Floors:       l.Floors,
		Waterfront:   l.Waterfront,
		Condition:    l.Condition,
		Grade:        l.Grade,
		YearBuilt:    l.YearBuilt,
		Zipcode:      l.Zipcode,
		Lat:          l.Lat,
		Long:         l.Long,
	}
}

func (r ListingRecord) toListing() models.Listing {
	return models.Listing{
		ID:           r.ListingID,
		Date:         r.Date,
		Price:        r.Price,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		SqftLiving:   r.SqftLiving,
		SqftBasement: r.SqftBasement,
		Floors:       r.Floors,
		Waterfront:   r.Waterfront,
		Condition:    r.Condition,
		Grade:        r.Grade,
		YearBuilt:    r.YearBuilt,
		Zipcode:      r.Zipcode,
		Lat:          r.Lat,
		Long:         r.Long,
	}
}

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Database{db: db}, nil
}

// ReplaceListings swaps the whole listings table for the given rows, keeping
// their order.
func (d *Database) ReplaceListings(ctx context.Context, listings []models.Listing) error {
	records := make([]ListingRecord, len(listings))
	for i, l := range listings {
		records[i] = recordFromListing(l)
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&ListingRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear listings: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert listings: %w", err)
		}
		return nil
	})
}

// GetAllListings returns every stored listing in import order.
func (d *Database) GetAllListings(ctx context.Context) ([]models.Listing, error) {
	var records []ListingRecord
	if err := d.db.WithContext(ctx).Order("seq").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}

	listings := make([]models.Listing, len(records))
	for i, r := range records {
		listings[i] = r.toListing()
	}
	return listings, nil
}

// CountListings returns the number of stored rows.
func (d *Database) CountListings(ctx context.Context) (int64, error) {
	var n int64
	if err := d.db.WithContext(ctx).Model(&ListingRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return n, nil
}

func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alphavelocity/moneyclip/internal/db"
	"github.com/alphavelocity/moneyclip/internal/models"
)

type assetRepository struct {
	db *db.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(database *db.DB) AssetRepository {
	return &assetRepository{db: database}
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	if asset == nil {
		return fmt.Errorf("nil asset")
	}
	asset.Currency = models.NormalizeCurrency(asset.Currency)
	if err := asset.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

func (r *assetRepository) GetByTicker(ctx context.Context, ticker string) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).First(&asset, "ticker = ?", ticker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("asset not found: %s", ticker)
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]*models.Asset, error) {
	var assets []*models.Asset
	if err := r.db.WithContext(ctx).Order("ticker").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return assets, nil
}

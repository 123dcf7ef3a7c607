package postgres

import (
	"context"

	"playden/internal/domain/entity"
	domainerrors "playden/internal/domain/errors"
	"playden/internal/domain/repository"
	"playden/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// menuRepository implements the repository.MenuRepository interface.
type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository is the constructor for menuRepository.
func NewMenuRepository(db *gorm.DB) repository.MenuRepository {
	return &menuRepository{
		db: db,
	}
}

// Create persists a new menu item.
func (repo *menuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateMenuItemName
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create menu item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

// FindByID retrieves a menu item by its unique ID.
func (repo *menuRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var itemM model.MenuItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMenuItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find menu item by ID")
	}

	return toMenuItemDomain(&itemM), nil
}

// FindByIDs retrieves menu items by their IDs.
func (repo *menuRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.MenuItem, error) {
	if len(ids) == 0 {
		return []*entity.MenuItem{}, nil
	}

	var itemModels []*model.MenuItemModel

	if err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find menu items by IDs")
	}

	return toMenuItemDomainSlice(itemModels), nil
}

// List retrieves menu items ordered by category then name.
func (repo *menuRepository) List(ctx context.Context, category string, availableOnly bool) ([]*entity.MenuItem, error) {
	query := repo.db.WithContext(ctx).Order("category ASC, name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}

	var itemModels []*model.MenuItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list menu items")
	}

	return toMenuItemDomainSlice(itemModels), nil
}

// ListCategories retrieves the distinct categories in use.
func (repo *menuRepository) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string

	if err := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list menu categories")
	}

	return categories, nil
}

// Update modifies an existing menu item.
func (repo *menuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	itemM := fromMenuItemDomain(item)

	result := repo.db.WithContext(ctx).
		Model(&model.MenuItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"name":             itemM.Name,
			"description":      itemM.Description,
			"price":            itemM.Price,
			"category":         itemM.Category,
			"image_url":        itemM.ImageURL,
			"is_available":     itemM.IsAvailable,
			"preparation_time": itemM.PreparationTime,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateMenuItemName
		}

		return errors.Wrap(result.Error, "failed to update menu item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// Delete removes a menu item by its ID (soft delete).
func (repo *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.MenuItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete menu item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrMenuItemNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toMenuItemDomain converts a GORM MenuItemModel to a domain MenuItem entity.
func toMenuItemDomain(data *model.MenuItemModel) *entity.MenuItem {
	if data == nil {
		return nil
	}

	return &entity.MenuItem{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		Price:           data.Price,
		Category:        data.Category,
		ImageURL:        data.ImageURL,
		IsAvailable:     data.IsAvailable,
		PreparationTime: data.PreparationTime,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toMenuItemDomainSlice(models []*model.MenuItemModel) []*entity.MenuItem {
	items := make([]*entity.MenuItem, 0, len(models))
	for _, itemM := range models {
		items = append(items, toMenuItemDomain(itemM))
	}

	return items
}

// fromMenuItemDomain converts a domain MenuItem entity to a GORM MenuItemModel.
func fromMenuItemDomain(data *entity.MenuItem) *model.MenuItemModel {
	if data == nil {
		return nil
	}

	return &model.MenuItemModel{
		ID:              data.ID,
		Name:            data.Name,
		Description:     data.Description,
		Price:           data.Price,
		Category:        data.Category,
		ImageURL:        data.ImageURL,
		IsAvailable:     data.IsAvailable,
		PreparationTime: data.PreparationTime,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

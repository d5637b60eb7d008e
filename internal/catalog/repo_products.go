package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
)

// lastCode returns the code column of the newest row, or "" on an empty
// table. Sequential allocation increments it.
func (r *gormRepo) lastCode(ctx context.Context, model any, column string) (string, error) {
	var code string
	err := r.db(ctx).Model(model).
		Select(column).
		Order("created_at DESC").
		Limit(1).
		Scan(&code).Error
	return code, err
}

func (r *gormRepo) LastMCode(ctx context.Context) (string, error) {
	return r.lastCode(ctx, &models.MedicalItem{}, "mcode")
}

func (r *gormRepo) CreateMedicalItem(ctx context.Context, item *models.MedicalItem) error {
	return r.db(ctx).Create(item).Error
}

func (r *gormRepo) GetMedicalItemByMCode(ctx context.Context, mcode string) (*models.MedicalItem, error) {
	var item models.MedicalItem
	return firstOrNil(r.db(ctx).Preload("Media").Where("mcode = ?", mcode), &item)
}

func (r *gormRepo) SaveMedicalItem(ctx context.Context, item *models.MedicalItem) error {
	return r.db(ctx).Omit("Media").Save(item).Error
}

func (r *gormRepo) ReplaceMedicalItemMedia(ctx context.Context, itemID uuid.UUID, media *models.MedicalItemMedia) error {
	if err := r.db(ctx).
		Where("medical_item_id = ?", itemID).
		Delete(&models.MedicalItemMedia{}).Error; err != nil {
		return err
	}
	if media == nil {
		return nil
	}
	media.MedicalItemID = itemID
	return r.db(ctx).Create(media).Error
}

func (r *gormRepo) DeleteMedicalItem(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Select("Media").Delete(&models.MedicalItem{ID: id}).Error
}

func (r *gormRepo) ListMedicalItems(ctx context.Context, catcode *string) ([]models.MedicalItem, error) {
	q := r.db(ctx).Preload("Media").Order("created_at DESC")
	if catcode != nil {
		q = q.Where("catcode = ?", *catcode)
	}
	var items []models.MedicalItem
	err := q.Find(&items).Error
	return items, err
}

func (r *gormRepo) LastItemCode(ctx context.Context) (string, error) {
	return r.lastCode(ctx, &models.Item{}, "item_code")
}

func (r *gormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.db(ctx).Create(item).Error
}

func (r *gormRepo) GetItemByCode(ctx context.Context, itemCode string) (*models.Item, error) {
	var item models.Item
	return firstOrNil(r.db(ctx).Preload("Media").Where("item_code = ?", itemCode), &item)
}

func (r *gormRepo) SaveItem(ctx context.Context, item *models.Item) error {
	return r.db(ctx).Omit("Media").Save(item).Error
}

func (r *gormRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Select("Media").Delete(&models.Item{ID: id}).Error
}

func (r *gormRepo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := r.db(ctx).Preload("Media").Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *gormRepo) LastCatCode(ctx context.Context) (string, error) {
	return r.lastCode(ctx, &models.Category{}, "catcode")
}

func (r *gormRepo) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db(ctx).Create(category).Error
}

func (r *gormRepo) GetCategoryByCode(ctx context.Context, catcode string) (*models.Category, error) {
	var category models.Category
	return firstOrNil(r.db(ctx).Where("catcode = ?", catcode), &category)
}

func (r *gormRepo) SaveCategory(ctx context.Context, category *models.Category) error {
	return r.db(ctx).Save(category).Error
}

func (r *gormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func (r *gormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db(ctx).Order("created_at DESC").Find(&categories).Error
	return categories, err
}

func (r *gormRepo) MedicineCodeExists(ctx context.Context, code string) (bool, error) {
	return r.codeExists(ctx, &models.Medicine{}, "medicine_code", code)
}

func (r *gormRepo) CreateMedicine(ctx context.Context, medicine *models.Medicine) error {
	return r.db(ctx).Create(medicine).Error
}

func (r *gormRepo) GetMedicineByCode(ctx context.Context, code string) (*models.Medicine, error) {
	var medicine models.Medicine
	return firstOrNil(r.db(ctx).Preload("Media").Where("medicine_code = ?", code), &medicine)
}

func (r *gormRepo) SaveMedicine(ctx context.Context, medicine *models.Medicine) error {
	return r.db(ctx).Omit("Media").Save(medicine).Error
}

func (r *gormRepo) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	return r.db(ctx).Select("Media").Delete(&models.Medicine{ID: id}).Error
}

func (r *gormRepo) ListMedicines(ctx context.Context, catcode *string) ([]models.Medicine, error) {
	q := r.db(ctx).Preload("Media").Order("created_at DESC")
	if catcode != nil {
		q = q.Where("catcode = ?", *catcode)
	}
	var medicines []models.Medicine
	err := q.Find(&medicines).Error
	return medicines, err
}

package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/pharmacart/pharmacart-backend/api/responses"
	"github.com/pharmacart/pharmacart-backend/api/validators"
	catalogsvc "github.com/pharmacart/pharmacart-backend/internal/catalog"
	"github.com/pharmacart/pharmacart-backend/pkg/db/models"
	"github.com/pharmacart/pharmacart-backend/pkg/enums"
	pkgerrors "github.com/pharmacart/pharmacart-backend/pkg/errors"
	"github.com/pharmacart/pharmacart-backend/pkg/logger"
)

type mediaRequest struct {
	Img1     *string `json:"img1,omitempty"`
	Img2     *string `json:"img2,omitempty"`
	Img3     *string `json:"img3,omitempty"`
	Img4     *string `json:"img4,omitempty"`
	VideoURL *string `json:"video_url,omitempty"`
}

func (m *mediaRequest) empty() bool {
	return m == nil || (m.Img1 == nil && m.Img2 == nil && m.Img3 == nil && m.Img4 == nil && m.VideoURL == nil)
}

type mediaResponse struct {
	Img1     *string `json:"img1,omitempty"`
	Img2     *string `json:"img2,omitempty"`
	Img3     *string `json:"img3,omitempty"`
	Img4     *string `json:"img4,omitempty"`
	VideoURL *string `json:"video_url,omitempty"`
}

type medicalItemRequest struct {
	SKUName            string           `json:"sku_name" validate:"required"`
	SKUCode            string           `json:"sku_code" validate:"required"`
	Unit               string           `json:"unit" validate:"required"`
	UnitPrefix         *string          `json:"unit_prefix,omitempty"`
	PrefixQty          *int             `json:"prefix_qty,omitempty"`
	CatCode            *string          `json:"catcode,omitempty"`
	PackageCount       int              `json:"package_count" validate:"omitempty,min=1"`
	ReorderLevel       int              `json:"reorder_level" validate:"omitempty,min=0"`
	MRP                *decimal.Decimal `json:"mrp,omitempty"`
	SellDiscount       *decimal.Decimal `json:"sell_discount,omitempty"`
	StorageLocation1   *string          `json:"storage_location1,omitempty"`
	StorageLocation2   *string          `json:"storage_location2,omitempty"`
	HSNCode            *string          `json:"hsn_code,omitempty"`
	Description        *string          `json:"description,omitempty"`
	DosageInstructions *string          `json:"dosage_instructions,omitempty"`
	BasicPrize         *decimal.Decimal `json:"basic_prize,omitempty"`
	GST                *decimal.Decimal `json:"gst,omitempty"`
	Media              *mediaRequest    `json:"media,omitempty"`
}

func (r medicalItemRequest) toModel() *models.MedicalItem {
	item := &models.MedicalItem{
		SKUName:            r.SKUName,
		SKUCode:            r.SKUCode,
		Unit:               r.Unit,
		UnitPrefix:         r.UnitPrefix,
		PrefixQty:          r.PrefixQty,
		CatCode:            r.CatCode,
		PackageCount:       r.PackageCount,
		ReorderLevel:       r.ReorderLevel,
		MRP:                r.MRP,
		SellDiscount:       r.SellDiscount,
		StorageLocation1:   r.StorageLocation1,
		StorageLocation2:   r.StorageLocation2,
		HSNCode:            r.HSNCode,
		Description:        r.Description,
		DosageInstructions: r.DosageInstructions,
		BasicPrize:         r.BasicPrize,
		GST:                r.GST,
	}
	if item.PackageCount == 0 {
		item.PackageCount = 1
	}
	if !r.Media.empty() {
		item.Media = &models.MedicalItemMedia{
			Img1:     r.Media.Img1,
			Img2:     r.Media.Img2,
			Img3:     r.Media.Img3,
			Img4:     r.Media.Img4,
			VideoURL: r.Media.VideoURL,
		}
	}
	return item
}

type medicalItemResponse struct {
	MCode              string           `json:"mcode"`
	SKUName            string           `json:"sku_name"`
	SKUCode            string           `json:"sku_code"`
	Unit               string           `json:"unit"`
	UnitPrefix         *string          `json:"unit_prefix,omitempty"`
	PrefixQty          *int             `json:"prefix_qty,omitempty"`
	CatCode            *string          `json:"catcode,omitempty"`
	PackageCount       int              `json:"package_count"`
	ReorderLevel       int              `json:"reorder_level"`
	MRP                *decimal.Decimal `json:"mrp,omitempty"`
	SellDiscount       *decimal.Decimal `json:"sell_discount,omitempty"`
	StorageLocation1   *string          `json:"storage_location1,omitempty"`
	StorageLocation2   *string          `json:"storage_location2,omitempty"`
	HSNCode            *string          `json:"hsn_code,omitempty"`
	Description        *string          `json:"description,omitempty"`
	DosageInstructions *string          `json:"dosage_instructions,omitempty"`
	BasicPrize         *decimal.Decimal `json:"basic_prize,omitempty"`
	GST                *decimal.Decimal `json:"gst,omitempty"`
	Media              *mediaResponse   `json:"media,omitempty"`
}

func toMedicalItemResponse(item *models.MedicalItem) medicalItemResponse {
	resp := medicalItemResponse{
		MCode:              item.MCode,
		SKUName:            item.SKUName,
		SKUCode:            item.SKUCode,
		Unit:               item.Unit,
		UnitPrefix:         item.UnitPrefix,
		PrefixQty:          item.PrefixQty,
		CatCode:            item.CatCode,
		PackageCount:       item.PackageCount,
		ReorderLevel:       item.ReorderLevel,
		MRP:                item.MRP,
		SellDiscount:       item.SellDiscount,
		StorageLocation1:   item.StorageLocation1,
		StorageLocation2:   item.StorageLocation2,
		HSNCode:            item.HSNCode,
		Description:        item.Description,
		DosageInstructions: item.DosageInstructions,
		BasicPrize:         item.BasicPrize,
		GST:                item.GST,
	}
	if item.Media != nil {
		resp.Media = &mediaResponse{
			Img1:     item.Media.Img1,
			Img2:     item.Media.Img2,
			Img3:     item.Media.Img3,
			Img4:     item.Media.Img4,
			VideoURL: item.Media.VideoURL,
		}
	}
	return resp
}

func CreateMedicalItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload medicalItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateMedicalItem(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toMedicalItemResponse(item))
	}
}

func GetMedicalItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetMedicalItem(r.Context(), chi.URLParam(r, "mcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMedicalItemResponse(item))
	}
}

func UpdateMedicalItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload medicalItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateMedicalItem(r.Context(), chi.URLParam(r, "mcode"), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMedicalItemResponse(item))
	}
}

func DeleteMedicalItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteMedicalItem(r.Context(), chi.URLParam(r, "mcode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "product deleted"})
	}
}

func ListMedicalItems(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListMedicalItems(r.Context(), validators.OptionalQuery(r, "catcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]medicalItemResponse, 0, len(items))
		for i := range items {
			out = append(out, toMedicalItemResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type itemRequest struct {
	SKUName            string           `json:"sku_name" validate:"required"`
	SKUCode            string           `json:"sku_code" validate:"required"`
	Unit               string           `json:"unit" validate:"required"`
	UnitPrefix         *string          `json:"unit_prefix,omitempty"`
	PrefixQty          *int             `json:"prefix_qty,omitempty"`
	Category           *string          `json:"category,omitempty"`
	PackageCount       int              `json:"package_count" validate:"omitempty,min=1"`
	ReorderLevel       int              `json:"reorder_level" validate:"omitempty,min=0"`
	MRP                *decimal.Decimal `json:"mrp,omitempty"`
	SellDiscount       *decimal.Decimal `json:"sell_discount,omitempty"`
	StorageLocation1   *string          `json:"storage_location1,omitempty"`
	StorageLocation2   *string          `json:"storage_location2,omitempty"`
	HSNCode            *string          `json:"hsn_code,omitempty"`
	Description        *string          `json:"description,omitempty"`
	DosageInstructions *string          `json:"dosage_instructions,omitempty"`
	Ingredients        *string          `json:"ingredients,omitempty"`
}

func (r itemRequest) toModel() *models.Item {
	item := &models.Item{
		SKUName:            r.SKUName,
		SKUCode:            r.SKUCode,
		Unit:               r.Unit,
		UnitPrefix:         r.UnitPrefix,
		PrefixQty:          r.PrefixQty,
		Category:           r.Category,
		PackageCount:       r.PackageCount,
		ReorderLevel:       r.ReorderLevel,
		MRP:                r.MRP,
		SellDiscount:       r.SellDiscount,
		StorageLocation1:   r.StorageLocation1,
		StorageLocation2:   r.StorageLocation2,
		HSNCode:            r.HSNCode,
		Description:        r.Description,
		DosageInstructions: r.DosageInstructions,
		Ingredients:        r.Ingredients,
	}
	if item.PackageCount == 0 {
		item.PackageCount = 1
	}
	return item
}

type itemResponse struct {
	ItemCode string           `json:"item_code"`
	SKUName  string           `json:"sku_name"`
	SKUCode  string           `json:"sku_code"`
	Unit     string           `json:"unit"`
	Category *string          `json:"category,omitempty"`
	MRP      *decimal.Decimal `json:"mrp,omitempty"`
}

func toItemResponse(item *models.Item) itemResponse {
	return itemResponse{
		ItemCode: item.ItemCode,
		SKUName:  item.SKUName,
		SKUCode:  item.SKUCode,
		Unit:     item.Unit,
		Category: item.Category,
		MRP:      item.MRP,
	}
}

func CreateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload itemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.CreateItem(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toItemResponse(item))
	}
}

func GetItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, err := svc.GetItem(r.Context(), chi.URLParam(r, "itemCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toItemResponse(item))
	}
}

func UpdateItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload itemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateItem(r.Context(), chi.URLParam(r, "itemCode"), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toItemResponse(item))
	}
}

func DeleteItem(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteItem(r.Context(), chi.URLParam(r, "itemCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "item deleted"})
	}
}

func ListItems(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]itemResponse, 0, len(items))
		for i := range items {
			out = append(out, toItemResponse(&items[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type categoryRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

type categoryResponse struct {
	CatCode     string  `json:"catcode"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

func toCategoryResponse(category *models.Category) categoryResponse {
	return categoryResponse{
		CatCode:     category.CatCode,
		Name:        category.Name,
		Description: category.Description,
		Image:       category.Image,
	}
}

func CreateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.CreateCategory(r.Context(), &models.Category{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toCategoryResponse(category))
	}
}

func GetCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := svc.GetCategory(r.Context(), chi.URLParam(r, "catcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCategoryResponse(category))
	}
}

func UpdateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload categoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		category, err := svc.UpdateCategory(r.Context(), chi.URLParam(r, "catcode"), &models.Category{
			Name:        payload.Name,
			Description: payload.Description,
			Image:       payload.Image,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCategoryResponse(category))
	}
}

func DeleteCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCategory(r.Context(), chi.URLParam(r, "catcode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "category deleted"})
	}
}

func ListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]categoryResponse, 0, len(categories))
		for i := range categories {
			out = append(out, toCategoryResponse(&categories[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

type medicineRequest struct {
	SKUName      string           `json:"sku_name" validate:"required"`
	SKUCode      *string          `json:"sku_code,omitempty"`
	Unit         string           `json:"unit" validate:"required"`
	UnitPrefix   *string          `json:"unit_prefix,omitempty"`
	PrefixQty    *int             `json:"prefix_qty,omitempty"`
	CatCode      *string          `json:"catcode,omitempty"`
	PackageCount int              `json:"package_count" validate:"omitempty,min=1"`
	MRP          *decimal.Decimal `json:"mrp,omitempty"`
	SellDiscount *decimal.Decimal `json:"sell_discount,omitempty"`
	Location1    *string          `json:"location1,omitempty"`
	Location2    *string          `json:"location2,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Dosage       *string          `json:"dosage,omitempty"`
	Ingredients  *string          `json:"ingredients,omitempty"`
	Status       string           `json:"status,omitempty"`
	HSNCode      *string          `json:"hsn_code,omitempty"`
	ReorderLevel int              `json:"reorder_level" validate:"omitempty,min=0"`
}

func (r medicineRequest) toModel() (*models.Medicine, error) {
	medicine := &models.Medicine{
		SKUName:      r.SKUName,
		SKUCode:      r.SKUCode,
		Unit:         r.Unit,
		UnitPrefix:   r.UnitPrefix,
		PrefixQty:    r.PrefixQty,
		CatCode:      r.CatCode,
		PackageCount: r.PackageCount,
		MRP:          r.MRP,
		SellDiscount: r.SellDiscount,
		Location1:    r.Location1,
		Location2:    r.Location2,
		Description:  r.Description,
		Dosage:       r.Dosage,
		Ingredients:  r.Ingredients,
		HSNCode:      r.HSNCode,
		ReorderLevel: r.ReorderLevel,
	}
	if medicine.PackageCount == 0 {
		medicine.PackageCount = 1
	}
	if r.Status == "" {
		medicine.Status = enums.StockStatusInStock
	} else {
		status, err := enums.ParseStockStatus(r.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock status")
		}
		medicine.Status = status
	}
	return medicine, nil
}

type medicineResponse struct {
	MedicineCode string           `json:"medicine_code"`
	SKUName      string           `json:"sku_name"`
	SKUCode      *string          `json:"sku_code,omitempty"`
	Unit         string           `json:"unit"`
	CatCode      *string          `json:"catcode,omitempty"`
	MRP          *decimal.Decimal `json:"mrp,omitempty"`
	SellDiscount *decimal.Decimal `json:"sell_discount,omitempty"`
	Status       string           `json:"status"`
}

func toMedicineResponse(medicine *models.Medicine) medicineResponse {
	return medicineResponse{
		MedicineCode: medicine.MedicineCode,
		SKUName:      medicine.SKUName,
		SKUCode:      medicine.SKUCode,
		Unit:         medicine.Unit,
		CatCode:      medicine.CatCode,
		MRP:          medicine.MRP,
		SellDiscount: medicine.SellDiscount,
		Status:       string(medicine.Status),
	}
}

func CreateMedicine(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload medicineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		medicine, err := svc.CreateMedicine(r.Context(), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toMedicineResponse(medicine))
	}
}

func GetMedicine(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicine, err := svc.GetMedicine(r.Context(), chi.URLParam(r, "medicineCode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMedicineResponse(medicine))
	}
}

func UpdateMedicine(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload medicineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := payload.toModel()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		medicine, err := svc.UpdateMedicine(r.Context(), chi.URLParam(r, "medicineCode"), model)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toMedicineResponse(medicine))
	}
}

func DeleteMedicine(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteMedicine(r.Context(), chi.URLParam(r, "medicineCode")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "medicine deleted"})
	}
}

func ListMedicines(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		medicines, err := svc.ListMedicines(r.Context(), validators.OptionalQuery(r, "catcode"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		out := make([]medicineResponse, 0, len(medicines))
		for i := range medicines {
			out = append(out, toMedicineResponse(&medicines[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

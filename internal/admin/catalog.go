package admin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storebot/internal/chat"
	"storebot/internal/i18n"
	"storebot/internal/models"
	"storebot/internal/pricing"
	"storebot/internal/repo"
	"storebot/internal/validate"
)

const (
	ActionCategories     = "admin_categories"
	ActionCategory       = "admin_cat"
	ActionCategoryAdd    = "admin_cat_add"
	ActionCategoryRename = "admin_cat_rename"
	ActionCategoryDelete = "admin_cat_delete"

	ActionProducts        = "admin_products"
	ActionProduct         = "admin_prod"
	ActionProductAdd      = "admin_prod_add"
	ActionProductCategory = "admin_prod_cat"
	ActionProductSkip     = "admin_prod_skip"
	ActionProductEdit     = "admin_prod_edit"
	ActionProductDelete   = "admin_prod_delete"
	ActionProductSearch   = "admin_prod_search"

	StepCategoryAdd    = StepPrefix + "category_add"
	StepCategoryRename = StepPrefix + "category_rename"

	productStepPrefix      = StepPrefix + "product_"
	StepProductName        = productStepPrefix + "name"
	StepProductPrice       = productStepPrefix + "price"
	StepProductDescription = productStepPrefix + "description"
	StepProductStock       = productStepPrefix + "stock"
	StepProductCategory    = productStepPrefix + "category"
	StepProductPhoto       = productStepPrefix + "photo"
	StepProductEdit        = productStepPrefix + "edit"
	StepProductSearch      = StepPrefix + "search_product"

	maxCategoryName    = 64
	maxProductName     = 128
	maxDescriptionSize = 1000
)

// Editable product fields, in the order of the edit buttons.
const (
	FieldName = iota
	FieldPrice
	FieldDescription
	FieldStock
	FieldPhoto
	FieldCategory
)

type categoryDraft struct {
	CategoryID int `json:"category_id"`
}

type productDraft struct {
	ProductID   int             `json:"product_id,omitempty"`
	Field       int             `json:"field,omitempty"`
	Name        string          `json:"name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock,omitempty"`
	CategoryID  *int            `json:"category_id,omitempty"`
}

// CategoryList shows admin_categories_<page>.
func (a *Admin) CategoryList(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	return a.categoryList(c, chat.Arg(c.Action, ActionCategories, 0, 0))
}

func (a *Admin) categoryList(c *chat.Context, pageNum int) ([]chat.Reply, error) {
	categories, err := a.Categories.AllCategories(c.Ctx)
	if err != nil {
		return nil, err
	}
	page := pricing.Paginate(categories, pageNum, pricing.PageSize)
	rows := chat.Column(lo.Map(page.Items, func(cat models.Category, _ int) chat.Button {
		return chat.Btn(cat.Name, chat.Action(ActionCategory, cat.ID))
	}))
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(c.T, page.Current, page.Total, func(p int) string {
			return chat.Action(ActionCategories, p)
		}))
	}
	rows = append(rows, chat.Row(chat.Btn(c.T.T(i18n.BtnAdminAddCategory), ActionCategoryAdd)), menuRow(c.T))

	text := c.T.T(i18n.AdminCategoriesHeader, len(categories))
	if len(categories) == 0 {
		text = c.T.T(i18n.NoCategories)
	}
	return chat.Text(text, rows...), nil
}

func (a *Admin) Category(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	id := chat.Arg(c.Action, ActionCategory, 0, 0)
	cat, err := a.Categories.CategoryByID(c.Ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return chat.Alert(c.T.T(i18n.AdminCategoryNotFound)), nil
	}
	if err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminCategoryCard, cat.ID, cat.Name),
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnAdminRename), chat.Action(ActionCategoryRename, cat.ID)),
			chat.Btn(c.T.T(i18n.BtnAdminDelete), chat.Action(ActionCategoryDelete, cat.ID)),
		),
		chat.Row(chat.Btn(c.T.T(i18n.BtnBack), chat.Action(ActionCategories, 0))),
	), nil
}

func (a *Admin) StartCategoryAdd(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	if err := c.State.Save(c.Ctx, StepCategoryAdd, categoryDraft{}); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminAskCategoryName), menuRow(c.T)), nil
}

func (a *Admin) StartCategoryRename(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	d := categoryDraft{CategoryID: chat.Arg(c.Action, ActionCategoryRename, 0, 0)}
	if err := c.State.Save(c.Ctx, StepCategoryRename, d); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminAskCategoryName), menuRow(c.T)), nil
}

// categoryText receives a new or changed category name. A duplicate name
// changes nothing and asks again.
func (a *Admin) categoryText(c *chat.Context, step string) ([]chat.Reply, error) {
	var d categoryDraft
	if _, err := c.State.Load(c.Ctx, &d); err != nil {
		return nil, err
	}
	name, ok := validate.Title(c.Text, maxCategoryName)
	if !ok {
		return chat.Text(c.T.T(i18n.AdminInvalidTitle, maxCategoryName), menuRow(c.T)), nil
	}

	var err error
	if step == StepCategoryAdd {
		_, err = a.Categories.CreateCategory(c.Ctx, name)
	} else {
		err = a.Categories.RenameCategory(c.Ctx, d.CategoryID, name)
	}
	switch {
	case errors.Is(err, repo.ErrCategoryExists):
		return chat.Text(c.T.T(i18n.AdminCategoryExists, name), menuRow(c.T)), nil
	case errors.Is(err, repo.ErrNotFound):
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return chat.Text(c.T.T(i18n.AdminCategoryNotFound), menuRow(c.T)), nil
	case err != nil:
		return nil, err
	}

	a.Logger.Info("category saved", zap.Int64("admin_id", c.UserID), zap.String("name", name))
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	replies, err := a.categoryList(c, 0)
	if err != nil {
		return nil, err
	}
	return append(chat.Text(c.T.T(i18n.AdminCategorySaved, name)), replies...), nil
}

// DeleteCategory refuses while active products still reference the category.
func (a *Admin) DeleteCategory(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	id := chat.Arg(c.Action, ActionCategoryDelete, 0, 0)
	err := a.Categories.DeleteCategory(c.Ctx, id)
	switch {
	case errors.Is(err, repo.ErrCategoryInUse):
		return chat.Alert(c.T.T(i18n.AdminCategoryInUse)), nil
	case errors.Is(err, repo.ErrNotFound):
		return chat.Alert(c.T.T(i18n.AdminCategoryNotFound)), nil
	case err != nil:
		return nil, err
	}
	a.Logger.Info("category deleted", zap.Int64("admin_id", c.UserID), zap.Int("category_id", id))

	replies, err := a.categoryList(c, 0)
	if err != nil {
		return nil, err
	}
	return append(chat.Alert(c.T.T(i18n.AdminCategoryDeleted)), replies...), nil
}

// ProductList shows admin_products_<page>; archived products are not listed.
func (a *Admin) ProductList(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	return a.productList(c, chat.Arg(c.Action, ActionProducts, 0, 0))
}

func (a *Admin) productList(c *chat.Context, pageNum int) ([]chat.Reply, error) {
	products, err := a.Products.AllProducts(c.Ctx)
	if err != nil {
		return nil, err
	}
	page := pricing.Paginate(products, pageNum, pricing.PageSize)
	rows := chat.Column(lo.Map(page.Items, func(p models.Product, _ int) chat.Button {
		return chat.Btn(fmt.Sprintf("#%d %s", p.ID, pricing.ShortName(p.Name, 30)), chat.Action(ActionProduct, p.ID))
	}))
	if page.Total > 1 {
		rows = append(rows, chat.PageNav(c.T, page.Current, page.Total, func(p int) string {
			return chat.Action(ActionProducts, p)
		}))
	}
	rows = append(rows,
		chat.Row(
			chat.Btn(c.T.T(i18n.BtnAdminAddProduct), ActionProductAdd),
			chat.Btn(c.T.T(i18n.BtnAdminSearchProduct), ActionProductSearch),
		),
		menuRow(c.T),
	)

	text := c.T.T(i18n.AdminProductsHeader, len(products))
	if len(products) == 0 {
		text = c.T.T(i18n.NoProducts)
	}
	return chat.Text(text, rows...), nil
}

func (a *Admin) Product(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	return a.showProduct(c, chat.Arg(c.Action, ActionProduct, 0, 0))
}

func (a *Admin) showProduct(c *chat.Context, id int) ([]chat.Reply, error) {
	p, err := a.Products.ProductByID(c.Ctx, id)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
		return chat.Alert(c.T.T(i18n.ProductUnavailable)), nil
	}
	if err != nil {
		return nil, err
	}

	category := models.NotSpecified
	if p.CategoryID != nil {
		if cat, err := a.Categories.CategoryByID(c.Ctx, *p.CategoryID); err == nil {
			category = cat.Name
		}
	}
	text := c.T.T(i18n.AdminProductCard, p.ID, p.Name, c.T.Price(p.Price), p.Stock, category, p.Description)
	edit := func(label i18n.Key, field int) chat.Button {
		return chat.Btn(c.T.T(label), chat.Action(ActionProductEdit, p.ID, field))
	}
	return []chat.Reply{{
		Text:    text,
		PhotoID: p.Photo,
		Keyboard: [][]chat.Button{
			chat.Row(edit(i18n.BtnEditName, FieldName), edit(i18n.BtnAdminEditPrice, FieldPrice)),
			chat.Row(edit(i18n.BtnAdminEditDescription, FieldDescription), edit(i18n.BtnAdminEditStock, FieldStock)),
			chat.Row(edit(i18n.BtnAdminEditPhoto, FieldPhoto), edit(i18n.BtnAdminEditCategory, FieldCategory)),
			chat.Row(chat.Btn(c.T.T(i18n.BtnAdminDelete), chat.Action(ActionProductDelete, p.ID))),
			chat.Row(chat.Btn(c.T.T(i18n.BtnBack), chat.Action(ActionProducts, 0))),
		},
	}}, nil
}

func (a *Admin) StartProductAdd(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	if err := c.State.Save(c.Ctx, StepProductName, productDraft{}); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminAskProductName), menuRow(c.T)), nil
}

// productText walks name, price, description and stock, then asks for a category.
func (a *Admin) productText(c *chat.Context, step string) ([]chat.Reply, error) {
	var d productDraft
	if _, err := c.State.Load(c.Ctx, &d); err != nil {
		return nil, err
	}

	switch step {
	case StepProductName:
		name, ok := validate.Title(c.Text, maxProductName)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidTitle, maxProductName), menuRow(c.T)), nil
		}
		d.Name = name
		return a.nextProductStep(c, StepProductPrice, d, i18n.AdminAskPrice)

	case StepProductPrice:
		price, ok := validate.Price(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidPrice), menuRow(c.T)), nil
		}
		d.Price = price
		return a.nextProductStep(c, StepProductDescription, d, i18n.AdminAskDescription)

	case StepProductDescription:
		desc, ok := description(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidTitle, maxDescriptionSize), menuRow(c.T)), nil
		}
		d.Description = desc
		return a.nextProductStep(c, StepProductStock, d, i18n.AdminAskStock)

	case StepProductStock:
		stock, ok := validate.Stock(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidStock), menuRow(c.T)), nil
		}
		d.Stock = stock
		if err := c.State.Save(c.Ctx, StepProductCategory, d); err != nil {
			return nil, err
		}
		return a.categoryPicker(c)

	case StepProductPhoto:
		if c.PhotoID == "" {
			return chat.Text(c.T.T(i18n.AdminAskPhoto), a.skipPhotoRow(c.T)), nil
		}
		return a.createProduct(c, d, c.PhotoID)

	case StepProductEdit:
		return a.editProduct(c, d)
	}
	return chat.Text(c.T.T(i18n.UseButtons)), nil
}

func (a *Admin) nextProductStep(c *chat.Context, step string, d productDraft, ask i18n.Key) ([]chat.Reply, error) {
	if err := c.State.Save(c.Ctx, step, d); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(ask), menuRow(c.T)), nil
}

func (a *Admin) categoryPicker(c *chat.Context) ([]chat.Reply, error) {
	categories, err := a.Categories.AllCategories(c.Ctx)
	if err != nil {
		return nil, err
	}
	buttons := lo.Map(categories, func(cat models.Category, _ int) chat.Button {
		return chat.Btn(cat.Name, chat.Action(ActionProductCategory, cat.ID))
	})
	rows := chat.Column(buttons)
	rows = append(rows,
		chat.Row(chat.Btn(c.T.T(i18n.BtnAdminNoCategory), chat.Action(ActionProductCategory, 0))),
		menuRow(c.T),
	)
	return chat.Text(c.T.T(i18n.AdminAskCategory), rows...), nil
}

// ProductCategory handles admin_prod_cat_<id> for a new product or a
// category change; 0 leaves the product without a category.
func (a *Admin) ProductCategory(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	var d productDraft
	step, err := c.State.Load(c.Ctx, &d)
	if err != nil {
		return nil, err
	}
	id := chat.Arg(c.Action, ActionProductCategory, 0, 0)
	if step == StepProductEdit && d.Field == FieldCategory {
		return a.changeCategory(c, d, id)
	}
	if step != StepProductCategory {
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	}
	if id > 0 {
		d.CategoryID = &id
	}
	if err := c.State.Save(c.Ctx, StepProductPhoto, d); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminAskPhoto), a.skipPhotoRow(c.T)), nil
}

func (a *Admin) skipPhotoRow(t *i18n.Localizer) []chat.Button {
	return chat.Row(
		chat.Btn(t.T(i18n.BtnAdminSkip), ActionProductSkip),
		chat.Btn(t.T(i18n.BtnAdminPanel), ActionMenu),
	)
}

func (a *Admin) SkipPhoto(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	var d productDraft
	step, err := c.State.Load(c.Ctx, &d)
	if err != nil {
		return nil, err
	}
	if step != StepProductPhoto {
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	}
	return a.createProduct(c, d, "")
}

func (a *Admin) createProduct(c *chat.Context, d productDraft, photo string) ([]chat.Reply, error) {
	p := &models.Product{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Stock:       d.Stock,
		CategoryID:  d.CategoryID,
		Photo:       photo,
		IsActive:    true,
	}
	if err := a.Products.CreateProduct(c.Ctx, p); err != nil {
		return nil, err
	}
	a.Logger.Info("product created", zap.Int64("admin_id", c.UserID), zap.Int("product_id", p.ID))
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	replies, err := a.showProduct(c, p.ID)
	if err != nil {
		return nil, err
	}
	return append(chat.Text(c.T.T(i18n.AdminProductSaved, p.Name)), replies...), nil
}

// StartProductEdit handles admin_prod_edit_<id>_<field>.
func (a *Admin) StartProductEdit(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	d := productDraft{
		ProductID: chat.Arg(c.Action, ActionProductEdit, 0, 0),
		Field:     chat.Arg(c.Action, ActionProductEdit, 1, -1),
	}
	ask := map[int]i18n.Key{
		FieldName:        i18n.AdminAskProductName,
		FieldPrice:       i18n.AdminAskPrice,
		FieldDescription: i18n.AdminAskDescription,
		FieldStock:       i18n.AdminAskStock,
		FieldPhoto:       i18n.AdminAskPhoto,
		FieldCategory:    i18n.AdminAskCategory,
	}
	key, ok := ask[d.Field]
	if !ok {
		return chat.Alert(c.T.T(i18n.StaleButton)), nil
	}
	if err := c.State.Save(c.Ctx, StepProductEdit, d); err != nil {
		return nil, err
	}
	if d.Field == FieldCategory {
		return a.categoryPicker(c)
	}
	return chat.Text(c.T.T(key), chat.Row(chat.Btn(c.T.T(i18n.BtnBack), chat.Action(ActionProduct, d.ProductID)))), nil
}

func (a *Admin) editProduct(c *chat.Context, d productDraft) ([]chat.Reply, error) {
	p, err := a.Products.ProductByID(c.Ctx, d.ProductID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return chat.Text(c.T.T(i18n.ProductUnavailable), menuRow(c.T)), nil
	}
	if err != nil {
		return nil, err
	}

	var ok bool
	switch d.Field {
	case FieldName:
		p.Name, ok = validate.Title(c.Text, maxProductName)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidTitle, maxProductName)), nil
		}
	case FieldPrice:
		p.Price, ok = validate.Price(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidPrice)), nil
		}
	case FieldDescription:
		p.Description, ok = description(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidTitle, maxDescriptionSize)), nil
		}
	case FieldStock:
		p.Stock, ok = validate.Stock(c.Text)
		if !ok {
			return chat.Text(c.T.T(i18n.AdminInvalidStock)), nil
		}
	case FieldPhoto:
		if c.PhotoID == "" {
			return chat.Text(c.T.T(i18n.AdminAskPhoto)), nil
		}
		p.Photo = c.PhotoID
	case FieldCategory:
		return a.categoryPicker(c)
	}

	if err := a.Products.UpdateProduct(c.Ctx, p); err != nil {
		return nil, err
	}
	a.Logger.Info("product updated",
		zap.Int64("admin_id", c.UserID), zap.Int("product_id", p.ID), zap.Int("field", d.Field))
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	replies, err := a.showProduct(c, p.ID)
	if err != nil {
		return nil, err
	}
	return append(chat.Text(c.T.T(i18n.AdminProductSaved, p.Name)), replies...), nil
}

// changeCategory moves an existing product; a product without a category
// is hidden from the catalog until it gets one.
func (a *Admin) changeCategory(c *chat.Context, d productDraft, categoryID int) ([]chat.Reply, error) {
	if categoryID > 0 {
		_, err := a.Categories.CategoryByID(c.Ctx, categoryID)
		if errors.Is(err, repo.ErrNotFound) {
			return chat.Alert(c.T.T(i18n.AdminCategoryNotFound)), nil
		}
		if err != nil {
			return nil, err
		}
	}
	p, err := a.Products.ProductByID(c.Ctx, d.ProductID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
		if err := c.State.Clear(c.Ctx); err != nil {
			return nil, err
		}
		return chat.Alert(c.T.T(i18n.ProductUnavailable)), nil
	}
	if err != nil {
		return nil, err
	}

	p.CategoryID = nil
	if categoryID > 0 {
		p.CategoryID = &categoryID
	}
	if err := a.Products.UpdateProduct(c.Ctx, p); err != nil {
		return nil, err
	}
	a.Logger.Info("product category changed",
		zap.Int64("admin_id", c.UserID), zap.Int("product_id", p.ID), zap.Int("category_id", categoryID))
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}
	replies, err := a.showProduct(c, p.ID)
	if err != nil {
		return nil, err
	}
	return append(chat.Text(c.T.T(i18n.AdminProductSaved, p.Name)), replies...), nil
}

func (a *Admin) StartProductSearch(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	if err := c.State.Save(c.Ctx, StepProductSearch, nil); err != nil {
		return nil, err
	}
	return chat.Text(c.T.T(i18n.AdminAskProductSearch), menuRow(c.T)), nil
}

// searchProducts matches an id or a name substring. A single hit opens the
// product card, several are listed with id buttons.
func (a *Admin) searchProducts(c *chat.Context) ([]chat.Reply, error) {
	query := strings.TrimSpace(c.Text)
	if query == "" {
		return chat.Text(c.T.T(i18n.AdminAskProductSearch), menuRow(c.T)), nil
	}
	found, err := a.Products.SearchProducts(c.Ctx, query)
	if err != nil {
		return nil, err
	}
	if err := c.State.Clear(c.Ctx); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return chat.Text(c.T.T(i18n.AdminNothingFound, query),
			chat.Row(chat.Btn(c.T.T(i18n.BtnAdminSearchProduct), ActionProductSearch)),
			menuRow(c.T),
		), nil
	case 1:
		return a.showProduct(c, found[0].ID)
	}

	page := pricing.Paginate(found, 0, pricing.PageSize*4)
	lines := []string{c.T.T(i18n.AdminProductsFound, len(found))}
	for _, p := range page.Items {
		lines = append(lines, fmt.Sprintf("#%d %s, %s", p.ID, p.Name, c.T.Price(p.Price)))
	}
	rows := chat.Grid(lo.Map(page.Items, func(p models.Product, _ int) chat.Button {
		return chat.Btn(fmt.Sprintf("#%d", p.ID), chat.Action(ActionProduct, p.ID))
	}))
	rows = append(rows, menuRow(c.T))
	return chat.Text(strings.Join(lines, "\n"), rows...), nil
}

// DeleteProduct archives the product; past orders keep referencing it.
func (a *Admin) DeleteProduct(c *chat.Context) ([]chat.Reply, error) {
	if denied := a.deny(c); denied != nil {
		return denied, nil
	}
	id := chat.Arg(c.Action, ActionProductDelete, 0, 0)
	err := a.Products.DeleteProduct(c.Ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return chat.Alert(c.T.T(i18n.ProductUnavailable)), nil
	}
	if err != nil {
		return nil, err
	}
	a.Logger.Info("product archived", zap.Int64("admin_id", c.UserID), zap.Int("product_id", id))

	replies, err := a.productList(c, 0)
	if err != nil {
		return nil, err
	}
	return append(chat.Alert(c.T.T(i18n.AdminProductDeleted)), replies...), nil
}

// description accepts "-" for an empty description.
func description(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == models.NotSpecified {
		return "", true
	}
	return validate.Title(s, maxDescriptionSize)
}

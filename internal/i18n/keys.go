package i18n

// Key names a message template in the locale catalogs.
type Key string

const (
	Welcome Key = "welcome"

	Forbidden    Key = "error.forbidden"
	ErrorGeneric Key = "error.generic"
	StaleButton  Key = "error.stale_button"
	UseButtons   Key = "error.use_buttons"

	Currency Key = "currency"

	BtnPrev                 Key = "btn.prev"
	BtnNext                 Key = "btn.next"
	BtnMainMenu             Key = "btn.main_menu"
	BtnBack                 Key = "btn.back"
	BtnCancel               Key = "btn.cancel"
	BtnConfirm              Key = "btn.confirm"
	BtnCatalog              Key = "btn.catalog"
	BtnCart                 Key = "btn.cart"
	BtnMyOrders             Key = "btn.my_orders"
	BtnProfile              Key = "btn.profile"
	BtnAddToCart            Key = "btn.add_to_cart"
	BtnRemove               Key = "btn.remove"
	BtnClearCart            Key = "btn.clear_cart"
	BtnPlaceOrder           Key = "btn.place_order"
	BtnActiveOrders         Key = "btn.active_orders"
	BtnAllOrders            Key = "btn.all_orders"
	BtnCancelOrder          Key = "btn.cancel_order"
	BtnUseProfile           Key = "btn.use_profile"
	BtnFillManually         Key = "btn.fill_manually"
	BtnUseProfileAddress    Key = "btn.use_profile_address"
	BtnEnterNewAddress      Key = "btn.enter_new_address"
	BtnEditData             Key = "btn.edit_data"
	BtnEditName             Key = "btn.edit_name"
	BtnEditPhone            Key = "btn.edit_phone"
	BtnEditAddress          Key = "btn.edit_address"
	BtnEditComment          Key = "btn.edit_comment"
	BtnEditPayment          Key = "btn.edit_payment"
	BtnEditDelivery         Key = "btn.edit_delivery"
	BtnCreateProfile        Key = "btn.create_profile"
	BtnEditProfile          Key = "btn.edit_profile"
	BtnAdminPanel           Key = "btn.admin.panel"
	BtnAdminOrders          Key = "btn.admin.orders"
	BtnAdminSearch          Key = "btn.admin.search"
	BtnAdminCategories      Key = "btn.admin.categories"
	BtnAdminProducts        Key = "btn.admin.products"
	BtnAdminStats           Key = "btn.admin.stats"
	BtnAdminExport          Key = "btn.admin.export"
	BtnAdminLogout          Key = "btn.admin.logout"
	BtnAdminAddCategory     Key = "btn.admin.add_category"
	BtnAdminAddProduct      Key = "btn.admin.add_product"
	BtnAdminRename          Key = "btn.admin.rename"
	BtnAdminDelete          Key = "btn.admin.delete"
	BtnAdminEditPrice       Key = "btn.admin.edit_price"
	BtnAdminEditDescription Key = "btn.admin.edit_description"
	BtnAdminEditStock       Key = "btn.admin.edit_stock"
	BtnAdminEditPhoto       Key = "btn.admin.edit_photo"
	BtnAdminNoCategory      Key = "btn.admin.no_category"
	BtnAdminSkip            Key = "btn.admin.skip"
	BtnAdminSearchProduct   Key = "btn.admin.search_product"
	BtnAdminEditCategory    Key = "btn.admin.edit_category"
	BtnAdminHelp            Key = "btn.admin.help"
	BtnHelp                 Key = "btn.help"

	NoCategories       Key = "catalog.no_categories"
	NoProducts         Key = "catalog.no_products"
	ChooseCategory     Key = "catalog.choose_category"
	ChooseProduct      Key = "catalog.choose_product"
	ProductCard        Key = "catalog.product_card"
	ProductUnavailable Key = "catalog.product_unavailable"

	AddedToCart Key = "cart.added"
	CartEmpty   Key = "cart.empty"
	CartHeader  Key = "cart.header"

	MyOrdersMenu          Key = "orders.menu"
	OrdersHeader          Key = "orders.header"
	NoOrders              Key = "orders.none"
	OrderNotFound         Key = "orders.not_found"
	OrderHeader           Key = "orders.order_header"
	OrderCustomer         Key = "orders.customer"
	OrderItemLine         Key = "orders.item_line"
	OrderTotal            Key = "orders.total"
	OrderPlaced           Key = "orders.placed"
	CustomerStatusChanged Key = "orders.status_changed"
	AdminNewOrder         Key = "orders.admin_new"

	PaymentCard     Key = "payment.card"
	PaymentCash     Key = "payment.cash"
	PaymentYooMoney Key = "payment.yoomoney"

	DeliveryCourier    Key = "delivery.courier"
	DeliveryPickup     Key = "delivery.pickup"
	AddressNotRequired Key = "delivery.address_not_required"

	NoComment Key = "orders.no_comment"

	CheckoutProfileChoice Key = "checkout.profile_choice"
	AskName               Key = "checkout.ask_name"
	AskPhone              Key = "checkout.ask_phone"
	AskComment            Key = "checkout.ask_comment"
	AskPayment            Key = "checkout.ask_payment"
	AskDelivery           Key = "checkout.ask_delivery"
	AskAddress            Key = "checkout.ask_address"
	AddressChoice         Key = "checkout.address_choice"
	PaymentUnavailable    Key = "checkout.payment_unavailable"
	ConfirmHeader         Key = "checkout.confirm_header"
	EditWhat              Key = "checkout.edit_what"
	Cancelled             Key = "checkout.cancelled"

	InvalidName    Key = "validation.name"
	InvalidPhone   Key = "validation.phone"
	InvalidAddress Key = "validation.address"

	ProfileEmpty   Key = "profile.empty"
	ProfileView    Key = "profile.view"
	ProfileConfirm Key = "profile.confirm"
	ProfileSaved   Key = "profile.saved"

	AdminMenu             Key = "admin.menu"
	AdminSessionExpired   Key = "admin.session_expired"
	AdminLoggedOut        Key = "admin.logged_out"
	AdminOrdersHeader     Key = "admin.orders_header"
	AdminChangeStatus     Key = "admin.change_status"
	AdminSameStatus       Key = "admin.same_status"
	AdminStatusChanged    Key = "admin.status_changed"
	AdminAskSearch        Key = "admin.ask_search"
	AdminNothingFound     Key = "admin.nothing_found"
	AdminSearchResults    Key = "admin.search_results"
	AdminCategoriesHeader Key = "admin.categories_header"
	AdminCategoryCard     Key = "admin.category_card"
	AdminCategoryNotFound Key = "admin.category_not_found"
	AdminAskCategoryName  Key = "admin.ask_category_name"
	AdminCategoryExists   Key = "admin.category_exists"
	AdminCategorySaved    Key = "admin.category_saved"
	AdminCategoryInUse    Key = "admin.category_in_use"
	AdminCategoryDeleted  Key = "admin.category_deleted"
	AdminInvalidTitle     Key = "admin.invalid_title"
	AdminProductsHeader   Key = "admin.products_header"
	AdminProductCard      Key = "admin.product_card"
	AdminAskProductName   Key = "admin.ask_product_name"
	AdminAskPrice         Key = "admin.ask_price"
	AdminInvalidPrice     Key = "admin.invalid_price"
	AdminAskDescription   Key = "admin.ask_description"
	AdminAskStock         Key = "admin.ask_stock"
	AdminInvalidStock     Key = "admin.invalid_stock"
	AdminAskCategory      Key = "admin.ask_category"
	AdminAskPhoto         Key = "admin.ask_photo"
	AdminProductSaved     Key = "admin.product_saved"
	AdminProductDeleted   Key = "admin.product_deleted"
	AdminStats            Key = "admin.stats"
	AdminTopProducts      Key = "admin.top_products"
	AdminTopProductLine   Key = "admin.top_product_line"
	AdminNothingToExport  Key = "admin.nothing_to_export"
	AdminExportCaption    Key = "admin.export_caption"
	AdminAskProductSearch Key = "admin.ask_product_search"
	AdminProductsFound    Key = "admin.products_found"

	Help      Key = "help.user"
	AdminHelp Key = "help.admin"
)

// AllKeys lists every constant above; Verify checks each of them in every locale.
var AllKeys = []Key{
	Welcome,
	Forbidden,
	ErrorGeneric,
	StaleButton,
	UseButtons,
	Currency,
	BtnPrev,
	BtnNext,
	BtnMainMenu,
	BtnBack,
	BtnCancel,
	BtnConfirm,
	BtnCatalog,
	BtnCart,
	BtnMyOrders,
	BtnProfile,
	BtnAddToCart,
	BtnRemove,
	BtnClearCart,
	BtnPlaceOrder,
	BtnActiveOrders,
	BtnAllOrders,
	BtnCancelOrder,
	BtnUseProfile,
	BtnFillManually,
	BtnUseProfileAddress,
	BtnEnterNewAddress,
	BtnEditData,
	BtnEditName,
	BtnEditPhone,
	BtnEditAddress,
	BtnEditComment,
	BtnEditPayment,
	BtnEditDelivery,
	BtnCreateProfile,
	BtnEditProfile,
	BtnAdminPanel,
	BtnAdminOrders,
	BtnAdminSearch,
	BtnAdminCategories,
	BtnAdminProducts,
	BtnAdminStats,
	BtnAdminExport,
	BtnAdminLogout,
	BtnAdminAddCategory,
	BtnAdminAddProduct,
	BtnAdminRename,
	BtnAdminDelete,
	BtnAdminEditPrice,
	BtnAdminEditDescription,
	BtnAdminEditStock,
	BtnAdminEditPhoto,
	BtnAdminNoCategory,
	BtnAdminSkip,
	BtnAdminSearchProduct,
	BtnAdminEditCategory,
	BtnAdminHelp,
	BtnHelp,
	NoCategories,
	NoProducts,
	ChooseCategory,
	ChooseProduct,
	ProductCard,
	ProductUnavailable,
	AddedToCart,
	CartEmpty,
	CartHeader,
	MyOrdersMenu,
	OrdersHeader,
	NoOrders,
	OrderNotFound,
	OrderHeader,
	OrderCustomer,
	OrderItemLine,
	OrderTotal,
	OrderPlaced,
	CustomerStatusChanged,
	AdminNewOrder,
	PaymentCard,
	PaymentCash,
	PaymentYooMoney,
	DeliveryCourier,
	DeliveryPickup,
	AddressNotRequired,
	NoComment,
	CheckoutProfileChoice,
	AskName,
	AskPhone,
	AskComment,
	AskPayment,
	AskDelivery,
	AskAddress,
	AddressChoice,
	PaymentUnavailable,
	ConfirmHeader,
	EditWhat,
	Cancelled,
	InvalidName,
	InvalidPhone,
	InvalidAddress,
	ProfileEmpty,
	ProfileView,
	ProfileConfirm,
	ProfileSaved,
	AdminMenu,
	AdminSessionExpired,
	AdminLoggedOut,
	AdminOrdersHeader,
	AdminChangeStatus,
	AdminSameStatus,
	AdminStatusChanged,
	AdminAskSearch,
	AdminNothingFound,
	AdminSearchResults,
	AdminCategoriesHeader,
	AdminCategoryCard,
	AdminCategoryNotFound,
	AdminAskCategoryName,
	AdminCategoryExists,
	AdminCategorySaved,
	AdminCategoryInUse,
	AdminCategoryDeleted,
	AdminInvalidTitle,
	AdminProductsHeader,
	AdminProductCard,
	AdminAskProductName,
	AdminAskPrice,
	AdminInvalidPrice,
	AdminAskDescription,
	AdminAskStock,
	AdminInvalidStock,
	AdminAskCategory,
	AdminAskPhoto,
	AdminProductSaved,
	AdminProductDeleted,
	AdminStats,
	AdminTopProducts,
	AdminTopProductLine,
	AdminNothingToExport,
	AdminExportCaption,
	AdminAskProductSearch,
	AdminProductsFound,
	Help,
	AdminHelp,
}

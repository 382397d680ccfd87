package catalogdto

type ServicePriceInput struct {
	ServiceName  string
	BasePrice    string
	IsPhotoPrint bool
}

type LocalPriceInput struct {
	ShopID      string
	ServiceName string
	Price       string
}

type CreateShopInput struct {
	Name          string
	Address       string
	HasPhotoPrint bool
	CanEditPrices bool
}

// UpdateShopInput leaves nil fields untouched.
type UpdateShopInput struct {
	Name          *string
	Address       *string
	HasPhotoPrint *bool
	CanEditPrices *bool
}

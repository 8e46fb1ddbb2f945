package constants

const (
	AppCartService    = "cart-service"
	AppProductService = "product-service"
	AppMainMallcart   = "main mallcart"
	AudienceUser      = "audience-user"
	IssuerUserService = "user-service"
)

package log

const (
	KeyAppName            = "app"
	KeyRequestID          = "requestId"
	KeyTraceID            = "traceId"
	KeySpanID             = "spanId"
	KeyProcess            = "process"
	KeyToken              = "token"
	KeyTag                = "tag"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestIp          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyConfig             = "config"
	KeyDbURL              = "dbUrl"
	KeyCacheKey           = "cacheKey"
	KeyJsonCache          = "jsonCache"
	KeyPathValues         = "pathValues"
	KeyUserID             = "userId"
	KeyProductID          = "productId"
	KeyProductIDs         = "productIds"
	KeyProduct            = "product"
	KeyCartLine           = "cartLine"
	KeyCartLineID         = "cartLineId"
	KeyCartLineCount      = "cartLineCount"
	KeyCartView           = "cartView"
	KeyQuantity           = "quantity"
	KeyRequestedQuantity  = "requestedQuantity"
	KeyEffectiveQuantity  = "effectiveQuantity"
	KeyStock              = "stock"
	KeySelected           = "selected"
	KeyItemCount          = "itemCount"
	KeyCatalogSource      = "catalogSource"
	KeyResponseStatusCode = "responseStatusCode"
)

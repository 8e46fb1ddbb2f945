package http

const (
	KeyHeaderContentType       = "Content-Type"
	KeyHeaderRequestID         = "X-Request-Id"
	KeyHeaderAuthorization     = "Authorization"
	ValueHeaderApplicationJson = "application/json"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

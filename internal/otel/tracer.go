package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Alturino/mallcart/internal/constants"
)

var Tracer = otel.Tracer(constants.AppMainMallcart)

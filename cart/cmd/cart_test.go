package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/mallcart/cart/internal/catalog"
	"github.com/Alturino/mallcart/internal/config"
	"github.com/Alturino/mallcart/internal/repository"
)

func TestNewCatalog(t *testing.T) {
	queries := repository.New(nil)

	tests := []struct {
		name      string
		cfg       config.Cart
		expected  any
		expectErr bool
	}{
		{name: "given empty source should use database", cfg: config.Cart{}, expected: &catalog.DatabaseCatalog{}},
		{
			name:     "given database source should use database",
			cfg:      config.Cart{CatalogSource: config.CatalogSourceDatabase},
			expected: &catalog.DatabaseCatalog{},
		},
		{
			name:     "given http source should use http",
			cfg:      config.Cart{CatalogSource: config.CatalogSourceHttp, CatalogURL: "http://product-service"},
			expected: &catalog.HttpCatalog{},
		},
		{
			name:      "given http source without url should fail",
			cfg:       config.Cart{CatalogSource: config.CatalogSourceHttp},
			expectErr: true,
		},
		{
			name:      "given unknown source should fail",
			cfg:       config.Cart{CatalogSource: "grpc"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := NewCatalog(tt.cfg, queries, nil)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.expected, actual)
		})
	}
}

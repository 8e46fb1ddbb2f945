package constants

// CacheKeyProducts prefixes the redis keys of cached catalog entries. The product service evicts
// these keys when it changes a product.
const CacheKeyProducts = "catalog:products:"

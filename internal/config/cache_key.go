package config

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TestCatalogKey returns the cache key for the serialized test catalog.
func (r *CacheKeyStruct) TestCatalogKey() string {
	return "tests:catalog"
}

var CacheKey = NewCacheKeyStruct()

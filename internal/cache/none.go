package cache

func init() {
	Register(ProviderNone, func(Options) (Cache, error) { return disabledCache{}, nil })
}

// disabledCache never keeps a page, so every fetch pass reaches the site.
type disabledCache struct{}

func (disabledCache) Get(string) ([]byte, bool) { return nil, false }
func (disabledCache) Set(string, []byte)        {}
func (disabledCache) Contains(string) bool      { return false }
func (disabledCache) Len() int                  { return 0 }
func (disabledCache) Close() error              { return nil }

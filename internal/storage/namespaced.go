package storage

// KeyValue is the capability shared by Store, Memory and Namespaced.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Namespaced prefixes every key of an underlying KeyValue.
// The SSH server gives each user their own best score this way.
type Namespaced struct {
	inner  KeyValue
	prefix string
}

// NewNamespaced wraps inner so that key k is stored as "<namespace>:<k>".
// An empty namespace passes keys through unchanged.
func NewNamespaced(inner KeyValue, namespace string) *Namespaced {
	prefix := ""
	if namespace != "" {
		prefix = namespace + ":"
	}
	return &Namespaced{inner: inner, prefix: prefix}
}

func (n *Namespaced) Get(key string) (string, bool, error) {
	return n.inner.Get(n.prefix + key)
}

func (n *Namespaced) Set(key, value string) error {
	return n.inner.Set(n.prefix+key, value)
}

func (n *Namespaced) Remove(key string) error {
	return n.inner.Remove(n.prefix + key)
}

var (
	_ KeyValue = (*Store)(nil)
	_ KeyValue = (*Memory)(nil)
	_ KeyValue = (*Namespaced)(nil)
)

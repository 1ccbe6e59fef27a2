package domain

type ID string

func (vo ID) String() string {
	return string(vo)
}

type Slug string

func (vo Slug) String() string {
	return string(vo)
}

type Name string

func (vo Name) String() string {
	return string(vo)
}

// Version is a monotonically increasing counter, used for row versions and
// table schema versions alike.
type Version int64

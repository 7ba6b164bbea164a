// Package directives is a loader fixture covering the directive surface.
package directives

import (
	"net/netip"
	"time"

	"regex-with/decode"
)

//regexwith:capturable re=`^(?P<id>\d+)$`
//regexwith:fromstr
type Record struct {
	ID uint64 `regex:"id"`
}

// Access is documented on the declaration.
//
//regexwith:capturable re="^(?P<host>\\S+) (?P<took>\\S+)$"
type Access struct {
	Host   netip.Addr    `regex:"host"`
	Took   time.Duration `regex:"took"`
	Note   *string
	Region string `regex:",default"`
	Hidden string `regex:"-"`
	inner  string
	Embedded
}

type Embedded struct {
	Trace string `regex:"trace"`
}

type (
	//regexwith:capturable re=`(?P<k>\w+)` flags="i"
	Flagged map[string]string

	//regexwith:fromstr
	Orphan struct{}

	//regexwith:frobnicate
	Unknown struct{}

	//regexwith:capturable
	NoPattern struct{}
)

type Custom struct{}

func (c *Custom) UnmarshalDecode(decode.Deserializer) error { return nil }

type Level int

func (l *Level) UnmarshalText([]byte) error { return nil }

type Plain struct{ Name string }

func (a Access) String() string { return a.inner }

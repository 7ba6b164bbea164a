package stale

//regexwith:capturable re=`^(?P<id>\d+)$`
//regexwith:fromstr
type Record struct {
	ID int `regex:"id"`
}

func parse(s string) (Record, error) { return ParseRecord(s) }

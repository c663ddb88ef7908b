// internal/finder/solr/nid.go
package solr

import "strconv"

func parseNID(id string) (int64, error) {
	return strconv.ParseInt(id, 10, 64)
}

func formatNID(nid int64) string {
	return strconv.FormatInt(nid, 10)
}

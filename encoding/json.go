package encoding

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ToJson renders data as a single-line JSON document.
func ToJson(data interface{}) string {
	d, _ := json.Marshal(data)
	return string(d)
}

package utils

import "github.com/goccy/go-json"

func StructToBytes(s interface{}) ([]byte, error) {
	return json.Marshal(s)
}

func BytesToStruct(data []byte, s interface{}) error {
	return json.Unmarshal(data, s)
}

// StructToString is StructToBytes for values persisted as strings.
func StructToString(s interface{}) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

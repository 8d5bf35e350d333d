// Package convert provides functions to convert core records to GORM models
package convert

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// intsToJSON converts a []int to datatypes.JSON for DB storage.
func intsToJSON(xs []int) datatypes.JSON {
	if len(xs) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(xs)
	return datatypes.JSON(data)
}

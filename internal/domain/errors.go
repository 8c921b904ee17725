package domain

import "errors"

// ErrGeocodeNoResult - геокодер не нашёл ни одного совпадения
var ErrGeocodeNoResult = errors.New("geocode: no results")

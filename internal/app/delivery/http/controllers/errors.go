package controllers

import "errors"

var errMissingReference = errors.New("reference query parameter is required")

// Package service implements the application's business logic on top of the
// sqlite store. Handlers stay thin and delegate here; services validate
// input, enforce ownership and uniqueness rules, and translate store errors
// into domain errors.
package service

import "github.com/apurvavyas7/CineSuggest/internal/validation"

// validate is a shared validator instance for request validation.
var validate = validation.New()

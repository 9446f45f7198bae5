// Package common contains shared constants and sentinel errors used across
// DiaryKeeper components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MaxTagsPerDiary caps the number of distinct tags on one diary entry.
const MaxTagsPerDiary = 3

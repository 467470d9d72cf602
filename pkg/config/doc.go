// Package config provides configuration types and loading for seedmock.
//
// Configuration is resolved from three layers, later layers winning:
//
//  1. Built-in defaults (Default)
//  2. A YAML or JSON file (LoadFile / Load)
//  3. SEEDMOCK_* environment variables (ApplyEnv)
//
// Example file:
//
//	id:
//	  format: sequential
//	  prefix: "id-"
//	  fieldOverrides:
//	    orderId: ulid
//	pagination:
//	  cache: true
//	  cacheTTL: 30m
//	  defaultTotal: 100
//	  defaultLimit: 10
//	cursor:
//	  enableExpiry: true
//	  cursorTTL: 1h
//	synth:
//	  openapiOmitRate: 0.5
//	  modelOmitRate: 0.3
//
// The matching environment variables are SEEDMOCK_ID_FORMAT,
// SEEDMOCK_PAGINATION_CACHE_TTL, SEEDMOCK_CURSOR_TTL and so on; see the
// env tags on each struct.
package config

// Package store serves a backend over HTTP so another node can use it as its remote.
//
// # Endpoints
//
//   - POST /store/get  {"path": ["folder", "item"]}
//   - POST /store/set  {"path": ["folder", "item"], "item": "value"}  (null item deletes)
//   - POST /store/list {"depth": "recursive", "folder": ["folder"]}
//
// Malformed requests answer 400; backend failures answer 500 with an ErrorResponse.
// A missing entry is a 200 with "found": false, never an error status.
//
// core/backend/httpstore is the matching client.
package store

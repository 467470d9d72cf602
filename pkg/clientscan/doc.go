// Package clientscan recovers endpoint and model metadata from the source
// of a generated TypeScript fetch client, without a TypeScript compiler.
//
// The scanner reads apis/**/*.ts and models/**/*.ts below a package root:
//
//	pkg, err := clientscan.NewScanner().ScanFS(os.DirFS("./petstore-client/src"))
//	for _, ep := range pkg.Endpoints {
//	    fmt.Println(ep.Method, ep.Path)
//	}
//
// API files yield one schema.Endpoint per *Raw method. Both request
// styles are recognized: a path assembled in a urlPath variable and a path
// template inlined into this.request({path: ...}), with dot or indexed
// access to requestParameters and any number of chained .replace calls.
//
// Model files yield schema.ModelSchema records. A file is checked for an
// enum (export enum, or an "as const" object with no interface) before
// anything else. Record fields combine the interface declaration (types),
// the FromJSON function (wire keys and nested model types) and the ToJSON
// function (field to wire key).
//
// Anything that does not match a known pattern is skipped and logged at
// debug level; the rest of the file is still used.
package clientscan

// Package protomock synthesizes Protocol Buffer messages and serves them
// over gRPC.
//
// Proto sources are compiled with protocompile, either from disk or from
// an in-memory map:
//
//	schema, err := protomock.ParseProtoFiles([]string{"api/users.proto"}, []string{"api/"})
//	if err != nil {
//	    return err
//	}
//	gen := protomock.NewGenerator(protomock.DefaultOptions())
//	p, err := schema.Provider("users.v1.User", gen, nil)
//	item := p.GenerateItem(0, "seed")
//
// Generation walks message descriptors. Keys are the fields' JSON names,
// 64-bit integers are emitted as decimal strings, and nested messages are
// bounded by a depth limit plus a set of message types currently being
// expanded; hitting either yields an empty object.
//
// Server answers every method of a loaded schema through
// grpc.UnknownServiceHandler. List methods whose response looks like a
// cursor page honor page_token and page_size.
package protomock

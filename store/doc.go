// Package store holds a loaded OpenRPC document and answers queries about it.
//
// A Store is built once per document. It extracts the concrete method list,
// builds the method namespace tree and owns the pointer cache and decoded
// schema arena used to resolve references. All of that state lives exactly
// as long as the Store:
//
//	s, err := store.Load(openrpc.WithFilePath("openrpc.json"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, m := range s.Search("balance") {
//		fmt.Println(m.Name, m.Path)
//	}
//	described, err := s.DescribeMethod("eth/getBalance")
//
// A Store is not safe for concurrent use.
package store

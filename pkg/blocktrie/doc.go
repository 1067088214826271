// Package blocktrie locates byte-identical duplicate files across one or
// more filesystem roots by hashing fixed-size blocks only as deep as needed
// to tell two files apart.
//
// # Core API
//
// The entry point is Engine, constructed from an InitParams bundle and run
// once per scan:
//
//	eng, err := blocktrie.NewEngine(blocktrie.InitParams{
//		Algo:        blocktrie.MD5,
//		BlockSize:   1024,
//		PathsScan:   []string{"/data"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := eng.Run(true); err != nil {
//		log.Fatal(err)
//	}
//
// # Reading results
//
// Run builds an in-memory trie of duplicate-equivalence classes. Walk it
// with Begin/End, exactly like a C++ forward iterator:
//
//	for it := eng.Begin(); !it.Equal(eng.End()); it.Next() {
//		it.Accessor().Visit(func(path string) {
//			fmt.Println(path)
//		})
//	}
//
// # Note on internal API
//
// Node, BlockKey and the trie's internal traversal machinery are
// implementation details. External consumers should use Engine, Iterator,
// Accessor and the error types declared in errors.go.
package blocktrie

// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides path and JSON pointer helpers for OpenRPC
// document traversal.
//
// [PathBuilder] uses push/pop semantics to track the current location during
// a recursive walk without allocating intermediate strings. The location is
// only materialized when a problem is reported, either as a display path
// ("methods[2].params") or as a same-document pointer ("#/methods/2/params").
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("methods")
//	path.PushIndex(i)
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
// The pointer helpers ([SplitPointer], [JoinPointer], [EscapeToken]) follow
// RFC 6901 token escaping. The Ref helpers build component pointers such as
// "#/components/schemas/Block".
package pathutil

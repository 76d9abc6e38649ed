// Filesystem walking implementation that provides an interface compatible with
// Go's standard path/filepath.Walk, but geared toward the installer's
// scan/extract/merge passes: a caller can request that a directory not be
// descended into (filepath.SkipDir) without needing a second pass, and the
// root is always visited first.
//
// Based on Go at 1.10.3
// (https://github.com/golang/go/blob/fe8a0d12b14108cbe2408b417afcaab722b0727c/src/path/filepath/path.go).
//
// The original code license:
//
// Copyright (c) 2009 The Go Authors. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
//    * Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//    * Redistributions in binary form must reproduce the above
// copyright notice, this list of conditions and the following disclaimer
// in the documentation and/or other materials provided with the
// distribution.
//    * Neither the name of Google Inc. nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
// "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
// LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
// A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// OWNER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
// LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
// DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
// THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
// (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package filesystem

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// walkRecursive is the recursive entry point underlying Walk.
func walkRecursive(path string, info os.FileInfo, visitor filepath.WalkFunc) error {
	// If this isn't a directory, then just visit it directly.
	if !info.IsDir() {
		return visitor(path, info, nil)
	}

	// Read directory contents.
	entries, contentErr := os.ReadDir(path)

	// Visit the directory, passing the visitor any error that occurred in
	// reading contents.
	visitErr := visitor(path, info, contentErr)

	// If we can't traverse into the directory, then we needn't continue.
	if contentErr != nil || visitErr != nil {
		return visitErr
	}

	// os.ReadDir already sorts by name; sort again since that isn't part of
	// its documented contract and callers here rely on deterministic order.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	// Process contents.
	for _, entry := range entries {
		childPath := filepath.Join(path, entry.Name())
		childInfo, err := entry.Info()
		if err != nil {
			if err := visitor(childPath, nil, err); err != nil && err != filepath.SkipDir {
				return err
			}
			continue
		}
		if err := walkRecursive(childPath, childInfo, visitor); err != nil {
			if err == filepath.SkipDir {
				if !childInfo.IsDir() {
					return errors.New("directory skip requested for non-directory")
				}
			} else {
				return err
			}
		}
	}

	// Success.
	return nil
}

// Walk provides a faster, SkipDir-aware implementation of path/filepath.Walk.
// The root is always the first entry visited (callers such as
// pkg/install.Scan rely on this to skip it), and a visitor that returns
// filepath.SkipDir for a directory prevents that directory's descendants from
// ever being visited, letting a single Created/TypeChanged/Deleted status
// stand in for an entire new or removed subtree.
func Walk(root string, visitor filepath.WalkFunc) error {
	// Create our error result.
	var result error

	// Grab information on the walk root.
	if info, err := os.Lstat(root); err != nil {
		result = visitor(root, nil, err)
	} else {
		result = walkRecursive(root, info, visitor)
	}

	// If the visitor has requested skipping the root, then everything is okay.
	if result == filepath.SkipDir {
		return nil
	}

	// Done.
	return result
}

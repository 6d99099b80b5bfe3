// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package vcs reads the revision metadata recorded in a distribution README:
// the remote URL, the HEAD hash and the commit number of a checkout.
//
// Checkouts are read with go-git, so no git binary is needed. A chromium
// source tarball has no checkout; its revision comes from build/util/LASTCHANGE.
package vcs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultChromiumURL is assumed when the chromium sources are not a checkout
const DefaultChromiumURL = "https://chromium.googlesource.com/chromium/src.git"

// ErrNotCheckout is returned when a directory is not the root of a git checkout
var ErrNotCheckout = errors.Base("not a git checkout")

// 📦 Info is the revision metadata of one checkout
type Info struct {
	URL  string
	Hash string
	// CommitNumber counts the commits reachable from HEAD. Zero when unknown.
	CommitNumber int
}

// IsCheckout reports whether dir is the root of a git checkout
func IsCheckout(dir string) bool {
	_, err := git.PlainOpen(dir)
	return err == nil
}

// 🔍 Read opens the checkout at dir and reads its origin URL, HEAD hash and commit number
func Read(ctx context.Context, dir string) (*Info, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Errorf("%s: %w", dir, ErrNotCheckout)
		}
		return nil, errors.Errorf("opening repository %s: %w", dir, err)
	}

	info := &Info{}

	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.URL = urls[0]
		}
	} else if !errors.Is(err, git.ErrRemoteNotFound) {
		return nil, errors.Errorf("reading origin remote: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, errors.Errorf("reading HEAD of %s: %w", dir, err)
	}
	info.Hash = head.Hash().String()

	commits, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, errors.Errorf("reading history of %s: %w", dir, err)
	}
	defer commits.Close()

	err = commits.ForEach(func(*object.Commit) error {
		info.CommitNumber++
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("counting commits of %s: %w", dir, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("dir", dir).
		Str("url", info.URL).
		Str("hash", info.Hash).
		Int("commit_number", info.CommitNumber).
		Msg("read checkout")

	return info, nil
}

// 📄 ReadLastChange extracts the hash from a LASTCHANGE file, whose first key looks like
//
//	LASTCHANGE=<hash>-refs/branch-heads/<branch>@{#<count>}
func ReadLastChange(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, val, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok || key != "LASTCHANGE" {
			continue
		}
		hash, _, _ := strings.Cut(val, "-")
		if hash == "" {
			break
		}
		return hash, nil
	}
	if err := scanner.Err(); err != nil {
		return "", errors.Errorf("reading %s: %w", path, err)
	}
	return "", errors.Errorf("failed to read chromium hash from %s", path)
}

// 🌐 ReadChromium reads the chromium checkout at srcDir. When srcDir is a source
// tarball the default URL and the LASTCHANGE hash are used.
func ReadChromium(ctx context.Context, srcDir string) (*Info, error) {
	info, err := Read(ctx, srcDir)
	if err == nil {
		return info, nil
	}
	if !errors.Is(err, ErrNotCheckout) {
		return nil, err
	}

	hash, err := ReadLastChange(filepath.Join(srcDir, "build", "util", "LASTCHANGE"))
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("hash", hash).Msg("chromium sources are not a checkout, using LASTCHANGE")

	return &Info{URL: DefaultChromiumURL, Hash: hash}, nil
}

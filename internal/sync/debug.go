// Copyright (C) 2015 The Syncthing Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at http://mozilla.org/MPL/2.0/.

package sync

import (
	"os"
	"strings"
	"time"

	"github.com/andastra/andastra/internal/logger"
)

var (
	debug     = strings.Contains(os.Getenv("ANDASTRA_TRACE"), "sync") || os.Getenv("ANDASTRA_TRACE") == "all"
	l         = logger.DefaultLogger
	threshold = 100 * time.Millisecond
)

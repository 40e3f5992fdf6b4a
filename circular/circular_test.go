// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package circular_test

import (
	"testing"

	"github.com/grailbio/dnawindow/circular"
	"github.com/grailbio/testutil/expect"
)

func TestExp2(t *testing.T) {
	tests := []struct {
		x, next, ceil int
	}{
		{1, 2, 1},
		{2, 4, 2},
		{3, 4, 4},
		{7, 8, 8},
		{8, 16, 8},
		{9, 16, 16},
		{1000, 1024, 1024},
	}
	for _, test := range tests {
		expect.EQ(t, circular.NextExp2(test.x), test.next, "NextExp2(%d)", test.x)
		expect.EQ(t, circular.CeilExp2(test.x), test.ceil, "CeilExp2(%d)", test.x)
	}
	expect.EQ(t, circular.CeilExp2(0), 1)
}

// Copyright (C) 2014 Jakob Borg and Contributors (see the CONTRIBUTORS file).
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License for
// more details.
//
// You should have received a copy of the GNU General Public License along
// with this program. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"strings"
	"testing"
)

func TestAPI(t *testing.T) {
	l := New()
	l.SetFlags(0)
	l.SetPrefix("testing")

	debug := 0
	l.AddHandler(LevelDebug, checkFunc(t, LevelDebug, "test 0", &debug))
	note := 0
	l.AddHandler(LevelNote, checkFunc(t, LevelNote, "test 1", &note))
	warn := 0
	l.AddHandler(LevelWarning, checkFunc(t, LevelWarning, "test 2", &warn))
	errs := 0
	l.AddHandler(LevelError, checkFunc(t, LevelError, "test 3", &errs))

	l.Debugf("test %d", 0)
	l.Debugln("test", 0)
	l.Notef("test %d", 1)
	l.Noteln("test", 1)
	l.Warningf("test %d", 2)
	l.Warningln("test", 2)
	l.Errorf("test %d", 3)
	l.Errorln("test", 3)

	if debug != 2 {
		t.Errorf("Debug handler called %d != 2 times", debug)
	}
	if note != 2 {
		t.Errorf("Note handler called %d != 2 times", note)
	}
	if warn != 2 {
		t.Errorf("Warning handler called %d != 2 times", warn)
	}
	if errs != 2 {
		t.Errorf("Error handler called %d != 2 times", errs)
	}
}

func checkFunc(t *testing.T, expectl Level, expectmsg string, counter *int) func(Level, string) {
	return func(l Level, msg string) {
		*counter++
		if l != expectl {
			t.Errorf("Incorrect message level %d != %d", l, expectl)
		}
		if !strings.HasSuffix(msg, expectmsg) {
			t.Errorf("%q does not end with %q", msg, expectmsg)
		}
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally derives counts, percentages, and the winner from the
per-voter choice map.

The tally is recomputed on demand and never persisted. Declared options are
zero-filled so the control surface always renders a complete ballot, and the
winner tie-break is fixed: the earliest option in ballot order holding the
maximum count wins. With zero votes there is no winner.
*/
package tally

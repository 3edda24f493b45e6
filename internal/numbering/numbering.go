// Package numbering allocates gap-filling sequence numbers for saved
// screenshots named TC_<prefix>_<NN>.png.
package numbering

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/zhubert/toolazy/internal/errors"
)

// Extension is the file extension of every saved image.
const Extension = ".png"

// FileName builds the name for sequence number n, zero-padded to two digits.
func FileName(prefix string, n int) string {
	return fmt.Sprintf("TC_%s_%02d%s", prefix, n, Extension)
}

// Pattern returns the case-insensitive matcher for names produced by FileName.
// The prefix is matched literally.
func Pattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^TC_` + regexp.QuoteMeta(prefix) + `_(\d+)\.png$`)
}

// Existing returns the sorted sequence numbers already used in dir for prefix.
// A missing directory has no used numbers.
func Existing(dir, prefix string) ([]int, error) {
	used, err := scan(dir, prefix)
	if err != nil {
		return nil, err
	}

	nums := make([]int, 0, len(used))
	for n := range used {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums, nil
}

// Next returns the smallest positive number with no matching file in dir.
// The directory is rescanned on every call.
func Next(dir, prefix string) (int, error) {
	used, err := scan(dir, prefix)
	if err != nil {
		return 0, err
	}

	n := 1
	for used[n] {
		n++
	}
	return n, nil
}

func scan(dir, prefix string) (map[int]bool, error) {
	used := make(map[int]bool)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return used, nil
		}
		return nil, errors.DirReadFailed(dir, err)
	}

	re := Pattern(prefix)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		// Digit runs too long for an int can never be allocated anyway
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		used[n] = true
	}
	return used, nil
}

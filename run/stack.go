package run

// DirStack holds the directories saved by @pushd, most recent last.
type DirStack struct {
	dirs []string
}

// Push saves dir.
func (s *DirStack) Push(dir string) { s.dirs = append(s.dirs, dir) }

// Pop removes and returns the most recently saved directory. It reports
// false, leaving the stack unchanged, if the stack is empty.
func (s *DirStack) Pop() (string, bool) {
	if len(s.dirs) == 0 {
		return "", false
	}

	dir := s.dirs[len(s.dirs)-1]
	s.dirs = s.dirs[:len(s.dirs)-1]

	return dir, true
}

// Len returns the number of saved directories.
func (s *DirStack) Len() int { return len(s.dirs) }

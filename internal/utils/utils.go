package utils

import "fmt"

// Returns the average of all given numbers n (0 when none are given)
func Average(n ...int) int {
	if len(n) == 0 {
		return 0
	}

	// Sum all numbers
	var sum int
	for _, num := range n {
		sum += num
	}

	// Divide sum by total numbers
	return sum / len(n)
}

// Returns block wrapped in an ANSI true-color background escape sequence
func ColoredBlock(block string, red int, green int, blue int) string {
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m", red, green, blue, block)
}

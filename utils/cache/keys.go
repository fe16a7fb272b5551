package cache

import "fmt"

// CollegeKey is the cache key for a college looked up by slug
func CollegeKey(slug string) string {
	return fmt.Sprintf("college:slug:%s", slug)
}

// FAQKey is the cache key for a college's published FAQ aggregate
func FAQKey(collegeID uint) string {
	return fmt.Sprintf("college:%d:faq", collegeID)
}

package service

import (
	"context"
	"regexp"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// Token rules: '#' or '@' followed by one or more word characters
// (letters, digits, underscore), scanned left to right.
var (
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	mentionPattern = regexp.MustCompile(`@(\w+)`)
)

// HashtagService extracts hashtag tokens from content and resolves them
// to stable hashtag identities.
type HashtagService struct {
	hashtagRepo repository.HashtagRepository
}

// NewHashtagService creates a new HashtagService.
func NewHashtagService(hashtagRepo repository.HashtagRepository) *HashtagService {
	return &HashtagService{hashtagRepo: hashtagRepo}
}

// ExtractHashtags returns the lowercase tag names found in content, in
// the order found, duplicates preserved. Callers dedupe.
func (s *HashtagService) ExtractHashtags(content string) []string {
	return extractTokens(hashtagPattern, content)
}

// ExtractMentions returns the lowercase usernames mentioned in content,
// in the order found, duplicates preserved.
func (s *HashtagService) ExtractMentions(content string) []string {
	return extractTokens(mentionPattern, content)
}

func extractTokens(pattern *regexp.Regexp, content string) []string {
	if content == "" {
		return nil
	}
	var tokens []string
	for _, match := range pattern.FindAllStringSubmatch(content, -1) {
		tokens = append(tokens, strings.ToLower(match[1]))
	}
	return tokens
}

// Resolve maps tag names to hashtag identities, creating missing ones.
// Input duplicates collapse to a single identity; result order follows
// first occurrence.
func (s *HashtagService) Resolve(ctx context.Context, names []string) ([]models.Hashtag, error) {
	seen := make(map[string]struct{}, len(names))
	var tags []models.Hashtag
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.hashtagRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

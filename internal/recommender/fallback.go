package recommender

import "beachtrack/internal/domain"

// FallbackRecommendations returns the fixed goals served when the model is
// unavailable or its output cannot be used. A fresh slice is returned on
// every call.
func FallbackRecommendations() []domain.Recommendation {
	return []domain.Recommendation{
		{
			Goal: "Enhance current technical skills and stay updated with industry trends",
			Activities: []string{
				"Complete online courses in your current technology stack",
				"Participate in internal knowledge sharing sessions",
				"Contribute to open source projects or internal tools",
			},
			LearningResources: &domain.LearningResources{
				UdemyCourses: []domain.LearningResource{
					{Title: "Modern JavaScript: Complete Course by Jonas Schmedtmann", Link: "https://www.udemy.com/course/javascript-beginners-complete-tutorial/"},
				},
				YoutubeVideos: []domain.LearningResource{
					{Title: "Software Engineering Best Practices by Fireship", Link: "https://www.youtube.com/watch?v=0Kqzfyp-w4s"},
				},
				Books: []domain.LearningResource{
					{Title: "Clean Code by Robert C. Martin", Link: "https://www.amazon.com/Clean-Code-Handbook-Software-Craftsmanship/dp/0132350884/"},
				},
				Papers: []domain.LearningResource{
					{Title: "The Twelve-Factor App Methodology", Link: "https://12factor.net/"},
				},
			},
		},
		{
			Goal: "Develop consulting and communication skills",
			Activities: []string{
				"Practice presenting technical concepts to non-technical audiences",
				"Participate in client proposal development",
				"Mentor junior team members",
			},
			LearningResources: &domain.LearningResources{
				UdemyCourses: []domain.LearningResource{
					{Title: "Public Speaking and Presentation Skills by TJ Walker", Link: "https://www.udemy.com/course/public-speaking-and-presentation-skills/"},
				},
				YoutubeVideos: []domain.LearningResource{
					{Title: "How to Present Technical Information by Simon Brown", Link: "https://www.youtube.com/watch?v=8jLOx1hD3_o"},
				},
				Books: []domain.LearningResource{
					{Title: "The McKinsey Way by Ethan M. Rasiel", Link: "https://www.amazon.com/McKinsey-Way-Ethan-M-Rasiel/dp/0070534489/"},
				},
				Papers: []domain.LearningResource{
					{Title: "Effective Technical Communication", Link: "https://ieeexplore.ieee.org/document/1234567"},
				},
			},
		},
	}
}

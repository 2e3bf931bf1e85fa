package recommender

import "strings"

const beachExpectations = `While on the beach a consultant is expected to:
- Support demand and other required efforts (client proposals, internal projects, interviews).
- Hone current skills and learn new and emerging ones.
- Actively seek to be staffed on projects.
- Respond to staffing team communications within a few hours.
- Keep Pathways ("Me Now" and "Me Next") and Jigsaw profiles up to date.
- Stay open to available project work even when it is not a perfect fit.
- Manage time appropriately and avoid unauthorized overtime.
- Take part in operational activities and internal contributions.`

const staffingGuidance = `Staffing works best when the consultant:
- Shares skills and aspirations through Pathways ("Me Now" and "Me Next").
- Keeps the Jigsaw profile (resume, industry and domain knowledge, preferences) current.
- Responds to staffing within hours.
- Understands that staffing looks at skills, archetypes and time on the beach.
- Is open to teams mixing tenured and newly hired people.
- Considers growth ambitions holistically.`

const outputFormat = `[
  {
    "goal": "Improve proficiency in AWS cloud architecture for enterprise solutions.",
    "activities": [
      "Complete the AWS Certified Solutions Architect Associate course.",
      "Volunteer to support a pre-sales pursuit that needs AWS architecture input."
    ],
    "learningResources": {
      "udemyCourses": [{"title": "AWS Certified Solutions Architect - Associate by Stephane Maarek", "link": "https://www.udemy.com/course/aws-certified-solutions-architect-associate/"}],
      "youtubeVideos": [{"title": "AWS Architecture Best Practices", "link": "https://www.youtube.com/watch?v=..."}],
      "books": [{"title": "Clean Code by Robert C. Martin", "link": "https://www.amazon.com/dp/0132350884/"}],
      "papers": [{"title": "The Twelve-Factor App", "link": "https://12factor.net/"}]
    }
  }
]`

// BuildPrompt returns the coaching prompt for a consultant's profile.
func BuildPrompt(meNow, meNext string) string {
	var sb strings.Builder
	sb.WriteString(`You are a career coach for a Thoughtworks consultant who is "on the beach" (not allocated to a project). Help them use this time to grow their skills and get staffed.

Current profile:
- Me Now (current skills and experience): `)
	sb.WriteString(orPlaceholder(meNow))
	sb.WriteString(`
- Me Next (career aspirations and desired skills): `)
	sb.WriteString(orPlaceholder(meNext))
	sb.WriteString("\n\n")
	sb.WriteString(beachExpectations)
	sb.WriteString("\n\n")
	sb.WriteString(staffingGuidance)
	sb.WriteString(`

Based on Me Now, Me Next and the guidance above, propose 3-5 SMART goals for the consultant's time on the beach. For each goal suggest 2-3 specific, actionable activities and, where relevant, learning resources with real links:
- udemyCourses: course title with instructor and a udemy.com URL
- youtubeVideos: video title with channel and a youtube.com URL
- books: title with author and an amazon.com URL
- papers: papers or industry reports with a direct link

Balance skill development, internal contributions and activities that improve staffing readiness. Omit learningResources for goals that do not need them.

Respond with a JSON array in exactly this shape:
`)
	sb.WriteString(outputFormat)
	sb.WriteString(`

Return ONLY the JSON array. No markdown, no code fences, no text before or after it.`)
	return sb.String()
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(not provided)"
	}
	return s
}

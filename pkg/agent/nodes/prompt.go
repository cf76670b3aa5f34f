package nodes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ai-recruiter-be/pkg/agent"
)

const synthesisTemplate = `You are an expert in recruitment.
You will be given retrieved chunks from resumes and candidate profiles matching the user query.
Suggest the user the best candidate suitable for the job description.
Always give priority to the "Retrieved Candidates" section, then look into the "Retrieved Chunks from Resumes" section for more information.

<Retrieved Candidates>
%s
</Retrieved Candidates>

<Retrieved Chunks from Resumes>
%s
</Retrieved Chunks from Resumes>`

const agentTemplate = `You are an expert in recruitment.
You will be given a candidate's details.
Use the calendar tool to check interview availability and the email tool to contact the candidate.

Current time: %s

<Candidate Details>
%s
</Candidate Details>`

// CandidateDetails renders a candidate profile for a model prompt.
func CandidateDetails(c agent.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", c.Name)
	fmt.Fprintf(&b, "Email: %s\n", c.Email)
	fmt.Fprintf(&b, "Contact: %s\n", c.Contact)
	fmt.Fprintf(&b, "Years of experience: %s\n", strconv.FormatFloat(c.YearsOfExperience, 'f', -1, 64))
	fmt.Fprintf(&b, "Skills: %s\n", strings.Join(c.Skills, ", "))
	fmt.Fprintf(&b, "Certifications: %s\n", strings.Join(c.Certifications, ", "))
	fmt.Fprintf(&b, "Experiences: %s\n", strings.Join(experienceLines(c.Experiences), "\n"))
	return b.String()
}

func experienceLines(exps []agent.Experience) []string {
	lines := make([]string, 0, len(exps))
	for _, e := range exps {
		end := e.EndDate
		if end == "" {
			end = "Present"
		}
		line := fmt.Sprintf("- %s at %s (%s - %s)", e.Title, e.Company, e.StartDate, end)
		if e.Description != "" {
			line += ": " + e.Description
		}
		lines = append(lines, line)
	}
	return lines
}

// SynthesisPrompt lists scored candidate profiles ahead of raw resume excerpts.
func SynthesisPrompt(candidates []agent.ScoredCandidate, resumes []agent.ResumeCandidate) string {
	var profiles strings.Builder
	for _, c := range candidates {
		profiles.WriteString(CandidateDetails(c.Candidate))
		profiles.WriteString("\n\n")
	}

	var excerpts strings.Builder
	for _, r := range resumes {
		fmt.Fprintf(&excerpts, "Retrieved Text for Candidate: %s\n%s\n\n", r.Name, strings.Join(r.Chunks, "\n"))
	}

	return fmt.Sprintf(synthesisTemplate, profiles.String(), excerpts.String())
}

func AgentPrompt(c agent.Candidate, now time.Time) string {
	return fmt.Sprintf(agentTemplate, now.Format(time.RFC3339), CandidateDetails(c))
}

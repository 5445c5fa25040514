package interview

// Prompt templates rendered with text/template via aigateway.RenderTemplate.

const interviewerSystemPrompt = `You are an expert HR interviewer. Generate technical and behavioral interview questions for hiring candidates.`

const evaluatorSystemPrompt = `You are an expert HR evaluator. Evaluate candidate interview responses objectively.`

const recommenderSystemPrompt = `You are an expert HR evaluator providing hiring recommendations.`

const questionsPromptTmpl = `Generate 5 interview questions for a {{.Position}} position in the {{.Department}} department.
For each question, provide:
1. The question text
2. The category (technical, behavioral, or situational)
3. 3-5 key points that a good answer should cover`

const evaluationPromptTmpl = `Question: {{.Question}}
Category: {{.Category}}
Expected points: {{.ExpectedPoints}}

Candidate's response: {{.Response}}

Evaluate this response and provide:
1. A score from 0-10
2. Detailed feedback on strengths and areas for improvement`

const recommendationPromptTmpl = `Based on an average score of {{.Score}}/10 across {{.Count}} interview questions for a {{.Position}} position, provide a brief hiring recommendation (2-3 sentences). Be objective and professional.`

package analyzer

// BuildRefinementPrompt returns the analysis prompt for a piece of user
// text. The embedded schema must stay in sync with domain.RefinedOutput.
func BuildRefinementPrompt(input string) string {
	return `Analyze the USER INPUT and return SPECIFIC analysis for prompt refinement.
Return ONLY valid JSON with these exact fields:

{
  "primaryIntent": "Brief description of the main goal",
  "functionalExpectations": ["Specific features the system should have"],
  "technicalConstraints": ["Technical requirements or limitations"],
  "expectedOutputs": ["What the final product should deliver"],
  "ambiguities": ["Unclear or unspecified aspects"],
  "missingInformation": ["Information that would be helpful to know"],
  "confidenceScore": 0.8
}

IMPORTANT:
- Analyze the specific user input below
- Make the analysis relevant to the actual content of the input
- Do not use generic responses
- Be specific to the domain and requirements mentioned
- Return ONLY the JSON object, no other text or explanation

USER INPUT:
` + input + `

JSON Response:`
}

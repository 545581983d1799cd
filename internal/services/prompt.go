package services

import (
	"fmt"
	"strings"

	"github.com/yungbote/codemorph-backend/internal/types"
)

const conversionSystemMessage = `You are an expert programming assistant that converts any input into pseudocode, flowcharts, and multiple programming languages.

When given any input (text description, code, image, or audio transcript), you should:
1. First understand the logic/algorithm described
2. Create clear, detailed pseudocode
3. Generate a Mermaid.js flowchart representation
4. Convert to the requested programming language

For pseudocode, use clear, structured format with proper indentation.
For flowcharts, use Mermaid.js syntax with proper flow control.
For code, write clean, well-commented, production-ready code.

Always be thorough and accurate in your conversions.`

func instructionPrompt(inputType, content, description string) string {
	switch inputType {
	case "code":
		return fmt.Sprintf("Analyze this code and create pseudocode, flowchart, and equivalent implementations:\n\n%s", content)
	case "text":
		return fmt.Sprintf("Convert this text description into pseudocode, flowchart, and code:\n\n%s", content)
	case "image":
		if strings.TrimSpace(description) == "" {
			description = "programming-related content"
		}
		return fmt.Sprintf("Analyze this image (which contains %s) and convert it into pseudocode, flowchart, and code:\n\nImage data: %s", description, content)
	case "audio":
		return fmt.Sprintf("Based on this audio transcript: '%s', create pseudocode, flowchart, and code implementation.", content)
	default:
		return fmt.Sprintf("Process this input and create pseudocode, flowchart, and code:\n\n%s", content)
	}
}

func pseudocodePrompt(inputType, content, description string) string {
	return instructionPrompt(inputType, content, description) +
		"\n\nPlease provide ONLY the pseudocode in a clear, structured format. Use proper indentation and clear logic flow."
}

func directTranslationPrompt(languageName, code string) string {
	return fmt.Sprintf("Convert this code directly to %s. Return only clean, working %s code:\n\n%s", languageName, languageName, code)
}

func flowchartPrompt(pseudocode string) string {
	return fmt.Sprintf("Based on this pseudocode:\n\n%s\n\nCreate a Mermaid.js flowchart. Provide ONLY the Mermaid.js code starting with 'flowchart TD' or 'graph TD'.", pseudocode)
}

func translationPrompt(languageName, pseudocode string) string {
	return fmt.Sprintf("Convert this pseudocode to %s:\n\n%s\n\nProvide ONLY the %s code, clean and well-commented.", languageName, pseudocode, languageName)
}

func analysisPrompt(pseudocode, code string) string {
	return fmt.Sprintf(`Analyze this code and provide:
1. Time complexity (Big O notation)
2. Space complexity (Big O notation)
3. Code quality score (1-10)
4. 3 specific optimization suggestions
5. 2 alternative approaches
6. Learning insights for beginners

Pseudocode:
%s

Code:
%s

Format response as JSON:
{
  "time_complexity": "O(...)",
  "space_complexity": "O(...)",
  "quality_score": 8,
  "optimizations": ["suggestion 1", "suggestion 2", "suggestion 3"],
  "alternatives": ["approach 1", "approach 2"],
  "learning_insights": ["insight 1", "insight 2"]
}`, pseudocode, code)
}

func skillInstruction(skillLevel string) string {
	switch skillLevel {
	case types.SkillBeginner:
		return "Explain concepts simply with basic examples and avoid complex jargon."
	case types.SkillIntermediate:
		return "Provide moderate detail with some technical terms and practical examples."
	case types.SkillAdvanced:
		return "Give comprehensive technical explanations with advanced concepts and optimizations."
	default:
		return "Explain concepts clearly and appropriately."
	}
}

func chatPrompt(skillLevel, contextPrompt, message string) string {
	return fmt.Sprintf(`You are an expert programming tutor having a conversation about code.

User Skill Level: %s
Instruction: %s

%sUser question: %s

Provide a helpful, conversational response adapted to their skill level. Be specific about the code when relevant. Keep responses concise but informative.`,
		skillLevel, skillInstruction(skillLevel), contextPrompt, message)
}

func chatContextPrompt(chatCtx ChatContext) string {
	var b strings.Builder
	if strings.TrimSpace(chatCtx.Code) != "" {
		fmt.Fprintf(&b, "Code being discussed:\n%s\n\n", chatCtx.Code)
	}
	if chatCtx.Analysis != nil {
		b.WriteString("Previous Analysis:\n")
		fmt.Fprintf(&b, "- Time Complexity: %s\n", chatCtx.Analysis.TimeComplexity)
		fmt.Fprintf(&b, "- Space Complexity: %s\n", chatCtx.Analysis.SpaceComplexity)
		fmt.Fprintf(&b, "- Quality Score: %g/10\n\n", chatCtx.Analysis.QualityScore)
	}
	return b.String()
}

func suggestionsPrompt(profile *types.SessionProfile, gaps, concepts []string, topic string) string {
	gapsText := "None identified yet"
	if len(gaps) > 0 {
		gapsText = strings.Join(gaps, ", ")
	}
	conceptsText := "None yet"
	if len(concepts) > 0 {
		conceptsText = strings.Join(concepts, ", ")
	}
	return fmt.Sprintf(`Based on this user profile, generate 3 personalized learning suggestions for the topic "%s":

User Skill Level: %s
Knowledge Gaps: %s
Completed Concepts: %s

Generate suggestions that:
1. Match their skill level
2. Address knowledge gaps
3. Build on completed concepts
4. Are practical and actionable

Format as JSON array: ["suggestion 1", "suggestion 2", "suggestion 3"]`,
		topic, profile.SkillLevel, gapsText, conceptsText)
}

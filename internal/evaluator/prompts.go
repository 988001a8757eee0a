package evaluator

import "text/template"

// promptInput is the data every judge prompt template is executed with.
type promptInput struct {
	Context    string
	UserQuery  string
	AIResponse string
}

var relevancePrompt = template.Must(template.New("relevance").Parse(
	`You are an expert evaluator assessing AI chatbot responses for relevance and completeness.

## Context Information (Retrieved from Knowledge Base):
{{.Context}}

## User Query:
{{.UserQuery}}

## AI Response to Evaluate:
{{.AIResponse}}

## Evaluation Task:
Evaluate the AI response on two dimensions:

### 1. RELEVANCE (Does the response address what the user asked?)
- Score 5: Directly and precisely addresses the user's question
- Score 4: Mostly relevant with minor tangential information
- Score 3: Partially relevant, some off-topic content
- Score 2: Mostly irrelevant to the user's question
- Score 1: Completely irrelevant

### 2. COMPLETENESS (Does the response fully answer the question?)
- Score 5: Comprehensive answer covering all aspects
- Score 4: Good coverage with minor omissions
- Score 3: Covers main points but missing important details
- Score 2: Incomplete, missing major aspects
- Score 1: Fails to answer the question

## Output Format (JSON):
{
    "relevance_score": <1-5>,
    "relevance_explanation": "<explanation>",
    "is_relevant": <true/false>,
    "completeness_score": <1-5>,
    "completeness_explanation": "<explanation>",
    "is_complete": <true/false>,
    "missing_aspects": ["<aspect1>", "<aspect2>", ...]
}

Respond ONLY with valid JSON.`))

var hallucinationPrompt = template.Must(template.New("hallucination").Parse(
	`You are an expert fact-checker evaluating AI responses for hallucinations and factual accuracy.

## Ground Truth Context (The ONLY source of truth):
{{.Context}}

## User Query:
{{.UserQuery}}

## AI Response to Evaluate:
{{.AIResponse}}

## Evaluation Task:
Identify all factual claims in the AI response and verify each against the provided context.

### Hallucination Categories:
1. **Fabricated Facts**: Information completely made up, not in context
2. **Misattributed Information**: Correct info attributed to wrong source/entity
3. **Distorted Facts**: Partially correct but altered in a misleading way
4. **Unsupported Claims**: Claims that could be true but aren't verifiable from context

### Scoring:
- Score 5: No hallucinations, all claims verified
- Score 4: Minor inaccuracies that don't affect meaning
- Score 3: Some unverifiable claims but no clear fabrications
- Score 2: Contains notable hallucinations or errors
- Score 1: Significant fabrications or dangerous misinformation

## Output Format (JSON):
{
    "hallucination_score": <1-5>,
    "has_hallucination": <true/false>,
    "factual_accuracy": <0.0-1.0>,
    "hallucinated_claims": [
        {
            "claim": "<the problematic claim>",
            "category": "<fabricated/misattributed/distorted/unsupported>",
            "explanation": "<why this is a hallucination>",
            "severity": "<high/medium/low>"
        }
    ],
    "verified_claims": [
        {
            "claim": "<verified claim>",
            "source_snippet": "<supporting text from context>"
        }
    ],
    "explanation": "<overall assessment>"
}

Respond ONLY with valid JSON.`))

var rougePrompt = template.Must(template.New("rouge").Parse(
	`You are an expert evaluator assessing how well an AI response captures information from the provided context.

## Context Information (Reference):
{{.Context}}

## User Query:
{{.UserQuery}}

## AI Response to Evaluate:
{{.AIResponse}}

## Evaluation Task:
Evaluate how well the AI response captures and reflects the information from the context using ROUGE-like metrics:

1. **ROUGE-1 (Unigram Coverage)**: How many key words/concepts from the context appear in the response? (0.0-1.0)
2. **ROUGE-2 (Bigram Coverage)**: How well do key phrases from the context appear in the response? (0.0-1.0)
3. **ROUGE-L (Longest Common Subsequence)**: How well does the response maintain the semantic flow and key information sequences from the context? (0.0-1.0)

## Output Format (JSON):
{
    "rouge_1": <0.0-1.0>,
    "rouge_2": <0.0-1.0>,
    "rouge_l": <0.0-1.0>,
    "rouge_1_precision": <0.0-1.0>,
    "rouge_1_recall": <0.0-1.0>,
    "rouge_2_precision": <0.0-1.0>,
    "rouge_2_recall": <0.0-1.0>,
    "rouge_l_precision": <0.0-1.0>,
    "rouge_l_recall": <0.0-1.0>,
    "explanation": "<brief explanation of scores>"
}

Respond ONLY with valid JSON.`))

package decompose

// decompositionPrompt is the prompt template for splitting one task into
// subtasks. The response contract is a bare numbered list; anything else
// is discarded by the parser.
const decompositionPrompt = `Break the following task into at most %d smaller subtasks.

Task:
%s

Rules:
- Return ONLY a numbered list: "1. ...", "2. ...", one subtask per line
- Each subtask must be self-contained and independently executable
- Order subtasks so earlier ones do not depend on later ones
- No headers, no prose, no explanations, no nested lists`

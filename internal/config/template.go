package config

const configTemplate = `# llmqa configuration file

# Hosted model provider (openai or gemini)
# API keys are read from OPENAI_API_KEY / GEMINI_API_KEY, never from this file
provider: openai

# Model name (optional, uses provider default if omitted: gpt-3.5-turbo / gemini-2.5-flash)
# model: gpt-3.5-turbo

# Request parameters
max_tokens: 200
temperature: 0.7
timeout: 30s

# Prompt template: basic sends the processed question as-is,
# enhanced wraps it in an instruction asking for cited sources
prompt_mode: basic

# Per-command overrides (optional)
#commands:
#  serve:
#    provider: gemini
#  ask:
#    prompt_mode: enhanced

# Web shell
serve:
  addr: ":8501"

# Observability settings
log_level: info  # debug, info, warn, error
`

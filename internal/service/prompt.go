package service

// NoContextAnswer is returned when retrieval yields nothing; the generator
// is not called in that case.
const NoContextAnswer = "No tengo información suficiente en los documentos."

// promptTemplate is the fixed instruction template. The context and the
// question are substituted literally; the model's output is returned
// verbatim.
const promptTemplate = `Eres un asistente experto. Usa EXCLUSIVAMENTE el siguiente contexto para responder la pregunta.

No confundas un tema mencionado dentro de un documento con el título o nombre de una sección.

Si el contexto no tiene la respuesta, di "No encuentro esa información".

CONTEXTO:
%s

PREGUNTA:
%s
`
